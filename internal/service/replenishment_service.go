package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
	ws "vendorhub/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateImportRequestDTO struct {
	VendorID  string `json:"vendor_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type RequestFilter struct {
	Status string // pending, approved, rejected or empty for all
	Page   int
	Limit  int
}

type ImportRequestResponse struct {
	ID          string `json:"id"`
	VendorID    string `json:"vendor_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	RequestDate string `json:"request_date"`
	Status      string `json:"status"`
}

type VendorStockResponse struct {
	ID        string `json:"id"`
	VendorID  string `json:"vendor_id"`
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

// Websocket payload
type ReplenishmentEvent struct {
	Event string                `json:"event"`
	Data  ImportRequestResponse `json:"data"`
}

// --- Interface ---

// ReplenishmentService owns the import-request state machine
// (pending → approved | rejected) and the vendor stock ledger it feeds.
type ReplenishmentService interface {
	CreateRequest(ctx context.Context, userID string, req CreateImportRequestDTO) (ImportRequestResponse, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]ImportRequestResponse, int64, error)
	ListVendorRequests(ctx context.Context, vendorID string) ([]ImportRequestResponse, error)
	Approve(ctx context.Context, id string, userID string) (ImportRequestResponse, error)
	Reject(ctx context.Context, id string, userID string) (ImportRequestResponse, error)
	ListVendorStock(ctx context.Context, vendorID string) ([]VendorStockResponse, error)
}

type replenishmentService struct {
	requestRepo       repository.ImportRequestRepository
	productRepo       repository.ProductRepository
	vendorRepo        repository.VendorRepository
	vendorProductRepo repository.VendorProductRepository
	auditRepo         repository.AuditRepository
	txManager         repository.TransactionManager
	hub               *ws.Hub
}

func NewReplenishmentService(
	requestRepo repository.ImportRequestRepository,
	productRepo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	vendorProductRepo repository.VendorProductRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) ReplenishmentService {
	return &replenishmentService{
		requestRepo:       requestRepo,
		productRepo:       productRepo,
		vendorRepo:        vendorRepo,
		vendorProductRepo: vendorProductRepo,
		auditRepo:         auditRepo,
		txManager:         txManager,
		hub:               hub,
	}
}

// --- Implementation ---

func (s *replenishmentService) CreateRequest(ctx context.Context, userID string, req CreateImportRequestDTO) (ImportRequestResponse, error) {
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return ImportRequestResponse{}, fmt.Errorf("invalid vendor_id: %w", err)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return ImportRequestResponse{}, fmt.Errorf("invalid product_id: %w", err)
	}

	var request model.ImportRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		vendor, findErr := s.vendorRepo.FindByID(txCtx, vendorID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrVendorNotFound
			}
			return &PersistenceError{Op: "load vendor", Err: findErr}
		}

		product, findErr := s.productRepo.FindByID(txCtx, productID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return &PersistenceError{Op: "load product", Err: findErr}
		}
		if product.Status != model.ProductStatusActive {
			return fmt.Errorf("product %q is inactive", product.Name)
		}

		request = model.ImportRequest{
			VendorID:    vendorID,
			ProductID:   productID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			RequestDate: time.Now(),
			Status:      model.RequestPending,
		}
		if createErr := s.requestRepo.Create(txCtx, &request); createErr != nil {
			return &PersistenceError{Op: "create import request", Err: createErr}
		}

		// A fresh pending request always flips hasOrders on.
		if !vendor.HasOrders {
			if updateErr := s.vendorRepo.UpdateHasOrders(txCtx, vendorID, true); updateErr != nil {
				return &PersistenceError{Op: "update vendor hasOrders", Err: updateErr}
			}
		}

		return s.logAction(txCtx, userID, model.ActionCreateImportRequest, request.ID.String(), product.Name, map[string]interface{}{
			"vendor_id":  req.VendorID,
			"product_id": req.ProductID,
			"quantity":   req.Quantity,
		})
	})

	if err != nil {
		return ImportRequestResponse{}, err
	}

	resp := toRequestResponse(request)
	s.broadcast("request_created", resp)
	return resp, nil
}

func (s *replenishmentService) ListRequests(ctx context.Context, filter RequestFilter) ([]ImportRequestResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	requests, total, err := s.requestRepo.List(ctx, filter.Status, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, &PersistenceError{Op: "list import requests", Err: err}
	}

	result := make([]ImportRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, toRequestResponse(r))
	}
	return result, total, nil
}

func (s *replenishmentService) ListVendorRequests(ctx context.Context, vendorID string) ([]ImportRequestResponse, error) {
	id, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}

	requests, err := s.requestRepo.ListByVendor(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Op: "list vendor requests", Err: err}
	}

	result := make([]ImportRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, toRequestResponse(r))
	}
	return result, nil
}

// Approve moves the requested quantity from the shared product pool into the
// vendor's stock ledger and finalizes the request. All reads take row locks
// and every write happens in one transaction, so a concurrent approval of the
// same request fails on the status check instead of double-applying stock.
func (s *replenishmentService) Approve(ctx context.Context, id string, userID string) (ImportRequestResponse, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return ImportRequestResponse{}, fmt.Errorf("invalid import request id: %w", err)
	}

	var approved model.ImportRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return &PersistenceError{Op: "load import request", Err: findErr}
		}

		if request.Status != model.RequestPending {
			return fmt.Errorf("%w: status is %s", ErrRequestFinalized, request.Status)
		}

		product, findErr := s.productRepo.FindByIDForUpdate(txCtx, request.ProductID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				// Request stays pending; the operator sees which product vanished.
				return fmt.Errorf("%w: %s", ErrProductNotFound, request.ProductName)
			}
			return &PersistenceError{Op: "load product", Err: findErr}
		}

		if product.Stock < request.Quantity {
			return &InsufficientStockError{
				ProductName: product.Name,
				Requested:   request.Quantity,
				Available:   product.Stock,
			}
		}

		key := model.VendorProductKey(request.VendorID, request.ProductID)
		entry, findErr := s.vendorProductRepo.FindByIDForUpdate(txCtx, key)
		switch {
		case findErr == nil:
			if updateErr := s.vendorProductRepo.UpdateStock(txCtx, key, entry.Stock+request.Quantity); updateErr != nil {
				return &PersistenceError{Op: "update vendor stock", Err: updateErr}
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			fresh := model.VendorProduct{
				ID:        key,
				VendorID:  request.VendorID,
				ProductID: request.ProductID,
				Stock:     request.Quantity,
			}
			if createErr := s.vendorProductRepo.Create(txCtx, &fresh); createErr != nil {
				return &PersistenceError{Op: "create vendor stock entry", Err: createErr}
			}
		default:
			return &PersistenceError{Op: "load vendor stock entry", Err: findErr}
		}

		if updateErr := s.productRepo.UpdateStock(txCtx, product.ID, product.Stock-request.Quantity); updateErr != nil {
			return &PersistenceError{Op: "update product stock", Err: updateErr}
		}

		if updateErr := s.requestRepo.UpdateStatus(txCtx, request.ID, model.RequestApproved); updateErr != nil {
			return &PersistenceError{Op: "update request status", Err: updateErr}
		}

		if syncErr := s.syncHasOrders(txCtx, request.VendorID); syncErr != nil {
			return syncErr
		}

		if auditErr := s.logAction(txCtx, userID, model.ActionApproveImportRequest, request.ID.String(), request.ProductName, map[string]interface{}{
			"vendor_id":   request.VendorID.String(),
			"product_id":  request.ProductID.String(),
			"quantity":    request.Quantity,
			"stock_after": product.Stock - request.Quantity,
		}); auditErr != nil {
			return auditErr
		}

		request.Status = model.RequestApproved
		approved = *request
		return nil
	})

	if err != nil {
		return ImportRequestResponse{}, err
	}

	resp := toRequestResponse(approved)
	s.broadcast("request_approved", resp)
	return resp, nil
}

// Reject finalizes the request without touching any stock field.
func (s *replenishmentService) Reject(ctx context.Context, id string, userID string) (ImportRequestResponse, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return ImportRequestResponse{}, fmt.Errorf("invalid import request id: %w", err)
	}

	var rejected model.ImportRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return &PersistenceError{Op: "load import request", Err: findErr}
		}

		if request.Status != model.RequestPending {
			return fmt.Errorf("%w: status is %s", ErrRequestFinalized, request.Status)
		}

		if updateErr := s.requestRepo.UpdateStatus(txCtx, request.ID, model.RequestRejected); updateErr != nil {
			return &PersistenceError{Op: "update request status", Err: updateErr}
		}

		if syncErr := s.syncHasOrders(txCtx, request.VendorID); syncErr != nil {
			return syncErr
		}

		if auditErr := s.logAction(txCtx, userID, model.ActionRejectImportRequest, request.ID.String(), request.ProductName, map[string]interface{}{
			"vendor_id":  request.VendorID.String(),
			"product_id": request.ProductID.String(),
			"quantity":   request.Quantity,
		}); auditErr != nil {
			return auditErr
		}

		request.Status = model.RequestRejected
		rejected = *request
		return nil
	})

	if err != nil {
		return ImportRequestResponse{}, err
	}

	resp := toRequestResponse(rejected)
	s.broadcast("request_rejected", resp)
	return resp, nil
}

func (s *replenishmentService) ListVendorStock(ctx context.Context, vendorID string) ([]VendorStockResponse, error) {
	id, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}

	entries, err := s.vendorProductRepo.ListByVendor(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Op: "list vendor stock", Err: err}
	}

	result := make([]VendorStockResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, VendorStockResponse{
			ID:        e.ID,
			VendorID:  e.VendorID.String(),
			ProductID: e.ProductID.String(),
			Stock:     e.Stock,
		})
	}
	return result, nil
}

// syncHasOrders recomputes the vendor's derived pending flag and persists it
// only when it changed. Must run after the request status write in the same
// transaction.
func (s *replenishmentService) syncHasOrders(ctx context.Context, vendorID uuid.UUID) error {
	pending, err := s.requestRepo.CountPendingByVendor(ctx, vendorID)
	if err != nil {
		return &PersistenceError{Op: "count pending requests", Err: err}
	}

	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVendorNotFound
		}
		return &PersistenceError{Op: "load vendor", Err: err}
	}

	hasOrders := pending > 0
	if vendor.HasOrders != hasOrders {
		if err := s.vendorRepo.UpdateHasOrders(ctx, vendorID, hasOrders); err != nil {
			return &PersistenceError{Op: "update vendor hasOrders", Err: err}
		}
	}
	return nil
}

func (s *replenishmentService) logAction(ctx context.Context, userID, action, entityID, entityName string, details map[string]interface{}) error {
	return writeAudit(ctx, s.auditRepo, userID, action, entityID, entityName, details)
}

func (s *replenishmentService) broadcast(event string, data ImportRequestResponse) {
	if s.hub == nil {
		return
	}
	msg, err := json.Marshal(ReplenishmentEvent{Event: event, Data: data})
	if err != nil {
		return
	}
	select {
	case s.hub.Broadcast <- msg:
	default:
	}
}

// --- Helpers ---

func toRequestResponse(r model.ImportRequest) ImportRequestResponse {
	return ImportRequestResponse{
		ID:          r.ID.String(),
		VendorID:    r.VendorID.String(),
		ProductID:   r.ProductID.String(),
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		RequestDate: r.RequestDate.Format(time.RFC3339),
		Status:      r.Status,
	}
}
