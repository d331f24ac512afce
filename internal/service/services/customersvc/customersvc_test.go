package customersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/icustomerrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/ifoodorderrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/ifoodrepo"
	"github.com/jmphair/order-up-midterm-project/internal/dal/interfaces/iorderrepo"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/auditevent"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/customer"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/food"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/foodorder"
	"github.com/jmphair/order-up-midterm-project/internal/service/models/order"
)

type fakeCustomerRepo struct {
	inserted  []customer.Customer
	insertErr error
}

func (r *fakeCustomerRepo) Insert(_ context.Context, c customer.Customer) (*customer.Customer, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	c.ID = int64(len(r.inserted) + 1)
	r.inserted = append(r.inserted, c)

	return &c, nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	for _, c := range r.inserted {
		if c.ID == id {
			return &c, nil
		}
	}

	return nil, customer.ErrCustomerNotFound
}

type fakeFoodRepo struct {
	catalog []food.Food
}

func (r *fakeFoodRepo) Query(_ context.Context, filter *food.QueryFoodsModel) ([]food.Food, error) {
	if len(filter.Ids) == 0 {
		return r.catalog, nil
	}

	result := []food.Food{}
	for _, f := range r.catalog {
		for _, id := range filter.Ids {
			if f.ID == id {
				result = append(result, f)
			}
		}
	}

	return result, nil
}

type fakeOrderRepo struct {
	orders []order.Order
}

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	o.ID = int64(len(r.orders) + 1)
	r.orders = append(r.orders, o)

	return &o, nil
}

func (r *fakeOrderRepo) Query(_ context.Context, _ *order.QueryOrdersModel) ([]order.Order, error) {
	return r.orders, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return &o, nil
		}
	}

	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) UpdateEstimatedTime(_ context.Context, _ int64, _ int) (*order.Order, error) {
	panic("not used")
}

func (r *fakeOrderRepo) UpdateOrder(_ context.Context, _ int64, _ order.UpdateOrderModel) (*order.Order, error) {
	panic("not used")
}

type fakeFoodOrderRepo struct {
	inserted  []foodorder.FoodOrder
	insertErr error
}

func (r *fakeFoodOrderRepo) BulkInsert(_ context.Context, lines []foodorder.FoodOrder) ([]foodorder.FoodOrder, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	for i := range lines {
		lines[i].ID = int64(len(r.inserted) + i + 1)
	}
	r.inserted = append(r.inserted, lines...)

	return lines, nil
}

func (r *fakeFoodOrderRepo) Query(_ context.Context, _ *foodorder.QueryFoodOrdersModel) ([]foodorder.FoodOrder, error) {
	return r.inserted, nil
}

type fakeUOW struct {
	began      bool
	committed  bool
	rolledBack bool

	customerRepo  *fakeCustomerRepo
	foodRepo      *fakeFoodRepo
	orderRepo     *fakeOrderRepo
	foodOrderRepo *fakeFoodOrderRepo
}

func (u *fakeUOW) Begin(_ context.Context) error    { u.began = true; return nil }
func (u *fakeUOW) Commit(_ context.Context) error   { u.committed = true; return nil }
func (u *fakeUOW) Rollback(_ context.Context) error { u.rolledBack = true; return nil }

func (u *fakeUOW) CustomerRepository() icustomerrepo.ICustomerRepository { return u.customerRepo }
func (u *fakeUOW) FoodRepository() ifoodrepo.IFoodRepository             { return u.foodRepo }
func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository          { return u.orderRepo }

func (u *fakeUOW) FoodOrderRepository() ifoodorderrepo.IFoodOrderRepository {
	return u.foodOrderRepo
}

type fakeAudit struct {
	events []auditevent.Event
}

func (a *fakeAudit) Publish(_ context.Context, events ...auditevent.Event) error {
	a.events = append(a.events, events...)

	return nil
}

func newTestUOW() *fakeUOW {
	return &fakeUOW{
		customerRepo: &fakeCustomerRepo{},
		foodRepo: &fakeFoodRepo{catalog: []food.Food{
			{ID: 1, Name: "Steak Frites", PriceCents: 3400},
			{ID: 2, Name: "Cheeseburger", PriceCents: 2200},
		}},
		orderRepo:     &fakeOrderRepo{},
		foodOrderRepo: &fakeFoodOrderRepo{},
	}
}

func newTestService(work *fakeUOW, audit *fakeAudit) *CustomerService {
	return &CustomerService{
		audit:  audit,
		newUOW: func() unitOfWork { return work },
	}
}

func TestCheckoutCreatesEverythingAtomically(t *testing.T) {
	work := newTestUOW()
	audit := &fakeAudit{}
	svc := newTestService(work, audit)

	ord, err := svc.Checkout(context.Background(), CheckoutModel{
		Name:  "A",
		Phone: "+15550000",
		Items: []CheckoutItem{
			{FoodID: 1, Quantity: 2},
			{FoodID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, work.committed)
	assert.Equal(t, order.StatusPending, ord.Status)
	require.NotNil(t, ord.Customer)
	assert.Equal(t, "A", ord.Customer.Name)
	require.Len(t, ord.FoodOrders, 2)
	assert.Equal(t, ord.ID, ord.FoodOrders[0].OrderID)

	require.Len(t, audit.events, 1)
	assert.Equal(t, auditevent.TypeOrderCreated, audit.events[0].Type)
}

func TestCheckoutUnknownFoodRollsBack(t *testing.T) {
	work := newTestUOW()
	svc := newTestService(work, &fakeAudit{})

	_, err := svc.Checkout(context.Background(), CheckoutModel{
		Name:  "A",
		Phone: "+15550000",
		Items: []CheckoutItem{{FoodID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, food.ErrFoodNotFound)
	assert.True(t, work.rolledBack)
	assert.False(t, work.committed)
	assert.Empty(t, work.customerRepo.inserted)
}

func TestCheckoutLineInsertFailureRollsBack(t *testing.T) {
	work := newTestUOW()
	work.foodOrderRepo.insertErr = errors.New("connection reset")
	svc := newTestService(work, &fakeAudit{})

	_, err := svc.Checkout(context.Background(), CheckoutModel{
		Name:  "A",
		Phone: "+15550000",
		Items: []CheckoutItem{{FoodID: 1, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, work.rolledBack)
	assert.False(t, work.committed)
}

func TestListMenu(t *testing.T) {
	work := newTestUOW()
	svc := newTestService(work, &fakeAudit{})

	foods, err := svc.ListMenu(context.Background())
	require.NoError(t, err)
	assert.Len(t, foods, 2)
}

func TestOrderStatusJoinsCustomerAndLines(t *testing.T) {
	work := newTestUOW()
	work.customerRepo.inserted = []customer.Customer{{ID: 1, Name: "A", Phone: "+15550000"}}
	work.orderRepo.orders = []order.Order{{ID: 1, CustomerID: 1, Status: order.StatusConfirmed}}
	work.foodOrderRepo.inserted = []foodorder.FoodOrder{{ID: 5, OrderID: 1, FoodID: 1, Quantity: 2}}
	svc := newTestService(work, &fakeAudit{})

	ord, err := svc.OrderStatus(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, ord.Customer)
	assert.Equal(t, "A", ord.Customer.Name)
	require.Len(t, ord.FoodOrders, 1)
}

func TestOrderStatusNotFound(t *testing.T) {
	work := newTestUOW()
	svc := newTestService(work, &fakeAudit{})

	_, err := svc.OrderStatus(context.Background(), 404)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}
