package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/entity"
)

// Response DTOs decouple the wire format from the entities; ids and
// timestamps are rendered as strings.

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toCategoryResponse(c *entity.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Description: c.Description,
		Status:      c.Status,
		CreatedAt:   fmtTime(c.CreatedAt),
		UpdatedAt:   fmtTime(c.UpdatedAt),
	}
}

func toCategoryResponses(items []*entity.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCategoryResponse(c))
	}
	return out
}

type courierResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CourierType string `json:"courierType"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toCourierResponse(c *entity.Courier) courierResponse {
	return courierResponse{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		CourierType: c.CourierType,
		Phone:       c.Phone,
		Address:     c.Address,
		Status:      c.Status,
		CreatedAt:   fmtTime(c.CreatedAt),
		UpdatedAt:   fmtTime(c.UpdatedAt),
	}
}

func toCourierResponses(items []*entity.Courier) []courierResponse {
	out := make([]courierResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCourierResponse(c))
	}
	return out
}

type vendorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toVendorResponse(v *entity.Vendor) vendorResponse {
	return vendorResponse{
		ID:        v.ID.Hex(),
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		Address:   v.Address,
		Status:    v.Status,
		CreatedAt: fmtTime(v.CreatedAt),
		UpdatedAt: fmtTime(v.UpdatedAt),
	}
}

func toVendorResponses(items []*entity.Vendor) []vendorResponse {
	out := make([]vendorResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toVendorResponse(v))
	}
	return out
}

type bankOrderResponse struct {
	ID           string  `json:"id"`
	OrderNumber  string  `json:"orderNumber"`
	BankName     string  `json:"bankName"`
	ProductName  string  `json:"productName"`
	CategoryID   string  `json:"categoryId"`
	Quantity     int     `json:"quantity"`
	Amount       float64 `json:"amount"`
	CustomerName string  `json:"customerName,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func toBankOrderResponse(o *entity.BankOrder) bankOrderResponse {
	return bankOrderResponse{
		ID:           o.ID.Hex(),
		OrderNumber:  o.OrderNumber,
		BankName:     o.BankName,
		ProductName:  o.ProductName,
		CategoryID:   o.CategoryID.Hex(),
		Quantity:     o.Quantity,
		Amount:       o.Amount,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		CreatedAt:    fmtTime(o.CreatedAt),
		UpdatedAt:    fmtTime(o.UpdatedAt),
	}
}

func toBankOrderResponses(items []*entity.BankOrder) []bankOrderResponse {
	out := make([]bankOrderResponse, 0, len(items))
	for _, o := range items {
		out = append(out, toBankOrderResponse(o))
	}
	return out
}

type purchaseOrderItemDTO struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

func toItemEntities(items []purchaseOrderItemDTO) []entity.PurchaseOrderItem {
	out := make([]entity.PurchaseOrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.PurchaseOrderItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}

type purchaseOrderResponse struct {
	ID          string                 `json:"id"`
	PONumber    string                 `json:"poNumber"`
	VendorID    string                 `json:"vendorId"`
	Items       []purchaseOrderItemDTO `json:"items"`
	TotalAmount float64                `json:"totalAmount"`
	Status      string                 `json:"status"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
}

func toPurchaseOrderResponse(p *entity.PurchaseOrder) purchaseOrderResponse {
	items := make([]purchaseOrderItemDTO, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, purchaseOrderItemDTO{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return purchaseOrderResponse{
		ID:          p.ID.Hex(),
		PONumber:    p.PONumber,
		VendorID:    p.VendorID.Hex(),
		Items:       items,
		TotalAmount: p.TotalAmount,
		Status:      p.Status,
		CreatedAt:   fmtTime(p.CreatedAt),
		UpdatedAt:   fmtTime(p.UpdatedAt),
	}
}

func toPurchaseOrderResponses(items []*entity.PurchaseOrder) []purchaseOrderResponse {
	out := make([]purchaseOrderResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPurchaseOrderResponse(p))
	}
	return out
}

type challanResponse struct {
	ID            string  `json:"id"`
	ChallanNumber string  `json:"challanNumber"`
	BankOrderID   string  `json:"bankOrderId"`
	CourierID     string  `json:"courierId"`
	Status        string  `json:"status"`
	Remarks       string  `json:"remarks,omitempty"`
	DispatchedAt  *string `json:"dispatchedAt,omitempty"`
	DeliveredAt   *string `json:"deliveredAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toChallanResponse(c *entity.DeliveryChallan) challanResponse {
	return challanResponse{
		ID:            c.ID.Hex(),
		ChallanNumber: c.ChallanNumber,
		BankOrderID:   c.BankOrderID.Hex(),
		CourierID:     c.CourierID.Hex(),
		Status:        c.Status,
		Remarks:       c.Remarks,
		DispatchedAt:  fmtTimePtr(c.DispatchedAt),
		DeliveredAt:   fmtTimePtr(c.DeliveredAt),
		CreatedAt:     fmtTime(c.CreatedAt),
		UpdatedAt:     fmtTime(c.UpdatedAt),
	}
}

func toChallanResponses(items []*entity.DeliveryChallan) []challanResponse {
	out := make([]challanResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toChallanResponse(c))
	}
	return out
}

type userResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Phone     string  `json:"phone,omitempty"`
	LastLogin *string `json:"lastLogin,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// toUserResponse never exposes the password hash, lockout counters or
// token state.
func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		LastLogin: fmtTimePtr(u.LastLogin),
		CreatedAt: fmtTime(u.CreatedAt),
		UpdatedAt: fmtTime(u.UpdatedAt),
	}
}

func toUserResponses(items []*entity.User) []userResponse {
	out := make([]userResponse, 0, len(items))
	for _, u := range items {
		out = append(out, toUserResponse(u))
	}
	return out
}

// parsePaging reads the page/limit query params; unparsable values fall
// back to the service defaults.
func parsePaging(r *http.Request) (int64, int64) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	return page, limit
}
