package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Server handles the HTTP API of the workflow engine.
// It coordinates between HTTP handlers and application use cases. The acting
// identity is resolved from the X-Tenant-ID, X-User-ID and X-User-Name
// headers, normally injected by the gateway in front of this service.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	rollbackOrderHandler     commands.RollbackOrderCommandHandler
	transitionOrderHandler   commands.TransitionOrderCommandHandler
	bulkTransitionHandler    commands.BulkTransitionCommandHandler
	splitOrderHandler        commands.SplitOrderCommandHandler
	generatePiecesHandler    commands.GeneratePiecesCommandHandler
	recordScanHandler        commands.RecordScanCommandHandler
	rejectPieceHandler       commands.RejectPieceCommandHandler
	syncQuantityReadyHandler commands.SyncQuantityReadyCommandHandler

	// Query handlers
	getAllowedTransitionsHandler queries.GetAllowedTransitionsQueryHandler
	getStatusHistoryHandler      queries.GetStatusHistoryQueryHandler
	checkQualityGateHandler      queries.CheckQualityGateQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	rollbackOrderHandler commands.RollbackOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	bulkTransitionHandler commands.BulkTransitionCommandHandler,
	splitOrderHandler commands.SplitOrderCommandHandler,
	generatePiecesHandler commands.GeneratePiecesCommandHandler,
	recordScanHandler commands.RecordScanCommandHandler,
	rejectPieceHandler commands.RejectPieceCommandHandler,
	syncQuantityReadyHandler commands.SyncQuantityReadyCommandHandler,
	getAllowedTransitionsHandler queries.GetAllowedTransitionsQueryHandler,
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler,
	checkQualityGateHandler queries.CheckQualityGateQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		rollbackOrderHandler:         rollbackOrderHandler,
		transitionOrderHandler:       transitionOrderHandler,
		bulkTransitionHandler:        bulkTransitionHandler,
		splitOrderHandler:            splitOrderHandler,
		generatePiecesHandler:        generatePiecesHandler,
		recordScanHandler:            recordScanHandler,
		rejectPieceHandler:           rejectPieceHandler,
		syncQuantityReadyHandler:     syncQuantityReadyHandler,
		getAllowedTransitionsHandler: getAllowedTransitionsHandler,
		getStatusHistoryHandler:      getStatusHistoryHandler,
		checkQualityGateHandler:      checkQualityGateHandler,
	}
}

// RegisterRoutes binds all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.DELETE("/orders/:orderId", s.RollbackOrder)
	api.POST("/orders/:orderId/transition", s.TransitionOrder)
	api.POST("/orders/transitions", s.BulkTransition)
	api.POST("/orders/:orderId/split", s.SplitOrder)
	api.POST("/orders/:orderId/items/:itemId/pieces", s.GeneratePieces)
	api.POST("/orders/:orderId/pieces/:pieceId/reject", s.RejectPiece)
	api.POST("/orders/:orderId/sync-ready", s.SyncQuantityReady)
	api.POST("/scans", s.RecordScan)
	api.GET("/orders/:orderId/transitions", s.GetAllowedTransitions)
	api.GET("/orders/:orderId/history", s.GetStatusHistory)
	api.GET("/orders/:orderId/gate", s.CheckQualityGate)
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := s.actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customerID, err := kernel.UUIDFromBytes(req.CustomerID[:])
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.ItemLine, len(req.Items))
	for i, line := range req.Items {
		productID, idErr := kernel.UUIDFromBytes(line.ProductID[:])
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		items[i] = commands.ItemLine{
			ProductID:   productID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			HasStain:    line.HasStain,
			HasDamage:   line.HasDamage,
			Notes:       line.Notes,
			TrackPieces: line.TrackPieces,
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor, customerID, req.Number, req.ServiceCategory, req.QuickDrop, items)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.Bytes()})
}

// RollbackOrder handles DELETE /api/v1/orders/{orderId} - removes an order
// that has not progressed past its initial status.
func (s *Server) RollbackOrder(ctx echo.Context) error {
	actor, orderID, err := s.actorAndOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRollbackOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.rollbackOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transition - moves
// one order to a new status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, orderID, err := s.actorAndOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, order.Status(req.ToStatus), req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		Order:   orderToResponse(result.Order),
		History: historyToResponse(result.History),
	})
}

// BulkTransition handles POST /api/v1/orders/transitions - moves a batch of
// orders to the same status. Returns per-order outcomes in request order.
func (s *Server) BulkTransition(ctx echo.Context) error {
	actor, err := s.actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req BulkTransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderIDs := make([]kernel.UUID, len(req.OrderIDs))
	for i, raw := range req.OrderIDs {
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		orderIDs[i] = id
	}

	cmd, err := commands.NewBulkTransitionCommand(orderIDs, actor, order.Status(req.ToStatus), req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.bulkTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := BulkResultResponse{
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Outcomes:  make([]BulkOutcomeResponse, len(result.Outcomes)),
	}
	for i, outcome := range result.Outcomes {
		response.Outcomes[i] = BulkOutcomeResponse{
			OrderID: outcome.OrderID.Bytes(),
			Success: outcome.Succeeded(),
		}
		if outcome.Err != nil {
			response.Outcomes[i].Error = outcome.Err.Error()
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SplitOrder handles POST /api/v1/orders/{orderId}/split - carves selected
// items or pieces out into a child order.
func (s *Server) SplitOrder(ctx echo.Context) error {
	actor, orderID, err := s.actorAndOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req SplitRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	itemIDs, err := uuidsFromRequest(req.ItemIDs)
	if err != nil {
		return writeError(ctx, err)
	}
	pieceIDs, err := uuidsFromRequest(req.PieceIDs)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSplitOrderCommand(orderID, actor, itemIDs, pieceIDs, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.splitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, SplitResponse{
		Parent: orderToResponse(result.Parent),
		Child:  orderToResponse(result.Child),
	})
}

// GeneratePieces handles POST /api/v1/orders/{orderId}/items/{itemId}/pieces -
// creates or adjusts barcoded pieces for one item.
func (s *Server) GeneratePieces(ctx echo.Context) error {
	actor, orderID, err := s.actorAndOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("itemId", err))
	}

	var req GeneratePiecesRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewGeneratePiecesCommand(orderID, itemID, actor, req.Count)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.generatePiecesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordScan handles POST /api/v1/scans - records a barcode scan against
// whichever order owns the piece.
func (s *Server) RecordScan(ctx echo.Context) error {
	actor, err := s.actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req RecordScanRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewRecordScanCommand(
		req.PieceCode, actor, order.ScanState(req.ScanState), order.PieceStatus(req.Stage))
	if err != nil {
		return writeError(ctx, err)
	}

	piece, err := s.recordScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, pieceToResponse(piece))
}

// RejectPiece handles POST /api/v1/orders/{orderId}/pieces/{pieceId}/reject -
// flags a piece as rejected and links the tracker issue.
func (s *Server) RejectPiece(ctx echo.Context) error {
	actor, orderID, err := s.actorAndOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	pieceID, err := kernel.UUIDFromString(ctx.Param("pieceId"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("pieceId", err))
	}

	var req RejectPieceRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	issueID, err := kernel.UUIDFromBytes(req.IssueID[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRejectPieceCommand(orderID, pieceID, issueID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.rejectPieceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SyncQuantityReady handles POST /api/v1/orders/{orderId}/sync-ready -
// recomputes ready counters from piece state across the whole order.
func (s *Server) SyncQuantityReady(ctx echo.Context) error {
	actor, orderID, err := s.actorAndOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSyncQuantityReadyCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.syncQuantityReadyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAllowedTransitions handles GET /api/v1/orders/{orderId}/transitions -
// lists where the order may go next under the tenant's policy.
func (s *Server) GetAllowedTransitions(ctx echo.Context) error {
	actor, orderID, err := s.actorAndOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetAllowedTransitionsQuery(actor.TenantID(), orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getAllowedTransitionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AllowedTransitionsResponse{
		Current:      result.Current,
		PolicySource: result.PolicySource,
		Allowed:      result.Allowed,
		Gated:        result.Gated,
	})
}

// GetStatusHistory handles GET /api/v1/orders/{orderId}/history - returns
// the audit trail of status changes, oldest first.
func (s *Server) GetStatusHistory(ctx echo.Context) error {
	actor, orderID, err := s.actorAndOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetStatusHistoryQuery(actor.TenantID(), orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.getStatusHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]HistoryResponse, len(rows))
	for i, row := range rows {
		response[i] = HistoryResponse{
			ID:        row.ID.Bytes(),
			From:      row.From,
			To:        row.To,
			ChangedBy: row.ChangedBy,
			ChangedAt: row.ChangedAt,
			Notes:     row.Notes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CheckQualityGate handles GET /api/v1/orders/{orderId}/gate?target=ready -
// dry-runs the gate rules for a target status without transitioning.
func (s *Server) CheckQualityGate(ctx echo.Context) error {
	actor, orderID, err := s.actorAndOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewCheckQualityGateQuery(
		actor.TenantID(), orderID, order.Status(ctx.QueryParam("target")))
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.checkQualityGateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, GateCheckResponse{
		Target:   result.Target,
		Allowed:  result.Allowed,
		Blockers: result.Blockers,
	})
}

func (s *Server) actorFromHeaders(ctx echo.Context) (kernel.Actor, error) {
	tenantID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Tenant-ID"))
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause("tenantId", err)
	}
	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-User-ID"))
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause("userId", err)
	}
	return kernel.NewActor(tenantID, userID, ctx.Request().Header.Get("X-User-Name"))
}

func (s *Server) actorAndOrderID(ctx echo.Context) (kernel.Actor, kernel.UUID, error) {
	actor, err := s.actorFromHeaders(ctx)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return actor, orderID, nil
}

func uuidsFromRequest(raw []uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, len(raw))
	for i, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
