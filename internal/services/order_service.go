package services

import (
	"backoffice/internal/models"
	"backoffice/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
		validate:  newValidator(),
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id models.ID) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder stores a new order. A missing total is computed from the
// items and a missing status becomes "waiting".
func (s *OrderService) CreateOrder(order *models.Order) error {
	if err := validateModel(s.validate, order); err != nil {
		return err
	}
	if order.Total == 0 {
		sum := decimal.Zero
		for _, item := range order.CartItems {
			sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		order.Total, _ = sum.Float64()
	}
	if order.Status == "" {
		order.Status = models.StatusWaiting
	}
	if err := s.orderRepo.Create(order); err != nil {
		return err
	}
	publish(s.events, "order.created", map[string]any{
		"orderID": order.ID,
		"status":  order.Status,
		"total":   order.Total,
	})
	return nil
}
