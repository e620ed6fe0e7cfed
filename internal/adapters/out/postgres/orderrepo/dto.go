// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between the domain model and the relational
// representation. The vertical payload and the status history are stored as
// jsonb documents; everything queried on is a plain column.
package orderrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Columns used by read models and reconciliation are indexed;
// the details and history documents are opaque to SQL.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber      string     `gorm:"uniqueIndex"`
	OrderType        string     `gorm:"index"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	ProviderID       *uuid.UUID `gorm:"type:uuid;index"`
	ProviderKind     *string
	Details          []byte          `gorm:"type:jsonb"`
	GrossAmount      decimal.Decimal `gorm:"type:numeric(14,2)"`
	CommissionRate   decimal.Decimal `gorm:"type:numeric(5,2)"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	ProviderPayout   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status           string          `gorm:"index"`
	History          []byte          `gorm:"type:jsonb"`
	PaymentStatus    string
	CompletedAt      *time.Time
	SoftDeleted      bool `gorm:"not null;default:false"`
	Version          int  `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

type deliveryDetailsJSON struct {
	PickupLat   float64 `json:"pickup_lat"`
	PickupLon   float64 `json:"pickup_lon"`
	DropoffLat  float64 `json:"dropoff_lat"`
	DropoffLon  float64 `json:"dropoff_lon"`
	Description string  `json:"description"`
	WeightKg    float64 `json:"weight_kg"`
	Vehicle     string  `json:"vehicle"`
	DistanceKm  float64 `json:"distance_km"`
	EtaMinutes  int     `json:"eta_minutes"`
}

type lineJSON struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

type marketplaceDetailsJSON struct {
	Lines       []lineJSON      `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
}

type sourcingDetailsJSON struct {
	Requirements string `json:"requirements"`
}

type coachingDetailsJSON struct {
	Topic           string    `json:"topic"`
	SessionAt       time.Time `json:"session_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

type statusChangeJSON struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
	Reason    string    `json:"reason,omitempty"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	details, err := marshalDetails(aggregate.Details())
	if err != nil {
		return OrderDTO{}, err
	}
	history, err := marshalHistory(aggregate.History())
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:               aggregate.ID().Bytes(),
		OrderNumber:      aggregate.OrderNumber().String(),
		OrderType:        aggregate.OrderType().String(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		Details:          details,
		GrossAmount:      aggregate.GrossAmount().Decimal(),
		CommissionRate:   aggregate.CommissionRate(),
		CommissionAmount: aggregate.CommissionAmount().Decimal(),
		ProviderPayout:   aggregate.ProviderPayout().Decimal(),
		Status:           aggregate.Status().String(),
		History:          history,
		PaymentStatus:    aggregate.PaymentStatus().String(),
		CompletedAt:      aggregate.CompletedAt(),
		SoftDeleted:      aggregate.IsSoftDeleted(),
		Version:          aggregate.Version(),
	}

	if ref := aggregate.ProviderRef(); ref != nil {
		providerID := ref.ID().Bytes()
		providerKind := ref.Kind().String()
		dto.ProviderID = &providerID
		dto.ProviderKind = &providerKind
	}

	return dto, nil
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder,
// which revalidates the structural invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	number, err := kernel.OrderNumberFromString(dto.OrderNumber)
	if err != nil {
		return nil, err
	}
	orderType, err := order.TypeFromString(dto.OrderType)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var providerRef *order.ProviderRef
	if dto.ProviderID != nil {
		if dto.ProviderKind == nil {
			return nil, errs.NewValueIsRequiredError("provider kind")
		}
		providerID, refErr := kernel.UUIDFromBytes((*dto.ProviderID)[:])
		if refErr != nil {
			return nil, refErr
		}
		kind, refErr := order.ProviderKindFromString(*dto.ProviderKind)
		if refErr != nil {
			return nil, refErr
		}
		ref, refErr := order.NewProviderRef(providerID, kind)
		if refErr != nil {
			return nil, refErr
		}
		providerRef = &ref
	}

	details, err := unmarshalDetails(orderType, dto.Details)
	if err != nil {
		return nil, err
	}
	history, err := unmarshalHistory(dto.History)
	if err != nil {
		return nil, err
	}

	grossAmount, err := kernel.NewMoney(dto.GrossAmount)
	if err != nil {
		return nil, err
	}
	commissionAmount, err := kernel.NewMoney(dto.CommissionAmount)
	if err != nil {
		return nil, err
	}
	providerPayout, err := kernel.NewMoney(dto.ProviderPayout)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:               id,
		OrderNumber:      number,
		OrderType:        orderType,
		CustomerID:       customerID,
		ProviderRef:      providerRef,
		Details:          details,
		GrossAmount:      grossAmount,
		CommissionRate:   dto.CommissionRate,
		CommissionAmount: commissionAmount,
		ProviderPayout:   providerPayout,
		Status:           status,
		History:          history,
		PaymentStatus:    paymentStatus,
		CompletedAt:      dto.CompletedAt,
		SoftDeleted:      dto.SoftDeleted,
		Version:          dto.Version,
	})
}

func marshalDetails(details order.Details) ([]byte, error) {
	switch d := details.(type) {
	case order.DeliveryDetails:
		return json.Marshal(deliveryDetailsJSON{
			PickupLat:   d.Pickup().Latitude(),
			PickupLon:   d.Pickup().Longitude(),
			DropoffLat:  d.Dropoff().Latitude(),
			DropoffLon:  d.Dropoff().Longitude(),
			Description: d.Description(),
			WeightKg:    d.WeightKg(),
			Vehicle:     d.Vehicle().String(),
			DistanceKm:  d.DistanceKm(),
			EtaMinutes:  d.EtaMinutes(),
		})
	case order.MarketplaceDetails:
		domainLines := d.Lines()
		lines := make([]lineJSON, 0, len(domainLines))
		for _, line := range domainLines {
			lines = append(lines, lineJSON{
				ProductID:   line.ProductID().String(),
				ProductName: line.ProductName(),
				UnitPrice:   line.UnitPrice().Decimal(),
				Quantity:    line.Quantity(),
			})
		}
		return json.Marshal(marketplaceDetailsJSON{
			Lines:       lines,
			Subtotal:    d.Subtotal().Decimal(),
			DeliveryFee: d.DeliveryFee().Decimal(),
		})
	case order.SourcingDetails:
		return json.Marshal(sourcingDetailsJSON{Requirements: d.Requirements()})
	case order.CoachingDetails:
		return json.Marshal(coachingDetailsJSON{
			Topic:           d.Topic(),
			SessionAt:       d.SessionAt(),
			DurationMinutes: d.DurationMinutes(),
		})
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("details",
			fmt.Errorf("unsupported payload type %T", details))
	}
}

func unmarshalDetails(orderType order.Type, raw []byte) (order.Details, error) {
	switch orderType {
	case order.Delivery:
		var doc deliveryDetailsJSON
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		pickup, err := kernel.NewGeoPoint(doc.PickupLat, doc.PickupLon)
		if err != nil {
			return nil, err
		}
		dropoff, err := kernel.NewGeoPoint(doc.DropoffLat, doc.DropoffLon)
		if err != nil {
			return nil, err
		}
		vehicle, err := order.VehicleKindFromString(doc.Vehicle)
		if err != nil {
			return nil, err
		}
		return order.NewDeliveryDetails(pickup, dropoff, doc.Description,
			doc.WeightKg, vehicle, doc.DistanceKm, doc.EtaMinutes)
	case order.Marketplace:
		var doc marketplaceDetailsJSON
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		lines := make([]order.Line, 0, len(doc.Lines))
		for _, rawLine := range doc.Lines {
			productID, lineErr := kernel.UUIDFromString(rawLine.ProductID)
			if lineErr != nil {
				return nil, lineErr
			}
			unitPrice, lineErr := kernel.NewMoney(rawLine.UnitPrice)
			if lineErr != nil {
				return nil, lineErr
			}
			line, lineErr := order.NewLine(productID, rawLine.ProductName, unitPrice, rawLine.Quantity)
			if lineErr != nil {
				return nil, lineErr
			}
			lines = append(lines, line)
		}
		subtotal, err := kernel.NewMoney(doc.Subtotal)
		if err != nil {
			return nil, err
		}
		deliveryFee, err := kernel.NewMoney(doc.DeliveryFee)
		if err != nil {
			return nil, err
		}
		return order.NewMarketplaceDetails(lines, subtotal, deliveryFee)
	case order.Sourcing:
		var doc sourcingDetailsJSON
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return order.NewSourcingDetails(doc.Requirements)
	case order.Coaching:
		var doc coachingDetailsJSON
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return order.NewCoachingDetails(doc.Topic, doc.SessionAt, doc.DurationMinutes)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("order type",
			fmt.Errorf("%q has no payload decoder", orderType))
	}
}

func marshalHistory(history []order.StatusChange) ([]byte, error) {
	doc := make([]statusChangeJSON, 0, len(history))
	for _, change := range history {
		doc = append(doc, statusChangeJSON{
			Status:    change.Status().String(),
			ChangedAt: change.ChangedAt(),
			ChangedBy: change.ChangedBy().String(),
			Reason:    change.Reason(),
		})
	}
	return json.Marshal(doc)
}

func unmarshalHistory(raw []byte) ([]order.StatusChange, error) {
	var doc []statusChangeJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	history := make([]order.StatusChange, 0, len(doc))
	for _, entry := range doc {
		status, err := order.StatusFromString(entry.Status)
		if err != nil {
			return nil, err
		}
		changedBy, err := kernel.UUIDFromString(entry.ChangedBy)
		if err != nil {
			return nil, err
		}
		change, err := order.NewStatusChange(status, entry.ChangedAt, changedBy, entry.Reason)
		if err != nil {
			return nil, err
		}
		history = append(history, change)
	}
	return history, nil
}
