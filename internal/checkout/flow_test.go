package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"storebot/internal/chat"
	"storebot/internal/checkout"
	"storebot/internal/i18n"
	"storebot/internal/models"
	"storebot/internal/orders"
	"storebot/internal/repo"
	"storebot/internal/state"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeCarts struct {
	lines []models.CartLine
}

func (f *fakeCarts) Lines(context.Context, int64) ([]models.CartLine, error) {
	return f.lines, nil
}

type fakeProfiles struct {
	user  *models.User
	saved []*models.User
}

func (f *fakeProfiles) UserByID(context.Context, int64) (*models.User, error) {
	if f.user == nil {
		return nil, repo.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeProfiles) SaveProfile(_ context.Context, u *models.User) error {
	f.saved = append(f.saved, u)
	return nil
}

type fakePlacer struct {
	carts   *fakeCarts
	details []models.OrderDetails
}

func (f *fakePlacer) Place(_ context.Context, userID int64, d models.OrderDetails) (*models.OrderWithItems, error) {
	if len(f.carts.lines) == 0 {
		return nil, orders.ErrCartEmpty
	}
	f.details = append(f.details, d.Normalize())
	f.carts.lines = nil
	return &models.OrderWithItems{Order: models.Order{ID: 42, UserID: userID}}, nil
}

type FlowSuite struct {
	suite.Suite
	bundle   *i18n.Bundle
	store    *state.Memory
	carts    *fakeCarts
	profiles *fakeProfiles
	placer   *fakePlacer
	flow     *checkout.Flow
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowSuite))
}

func (s *FlowSuite) SetupSuite() {
	b, err := i18n.Load("ru")
	s.Require().NoError(err)
	s.bundle = b
}

func (s *FlowSuite) SetupTest() {
	s.store = state.NewMemory()
	s.carts = &fakeCarts{lines: []models.CartLine{
		{ProductID: 1, Name: "Чай", Price: decimal.NewFromInt(100), Quantity: 2},
		{ProductID: 2, Name: "Кофе", Price: decimal.NewFromInt(50), Quantity: 1},
	}}
	s.profiles = &fakeProfiles{}
	s.placer = &fakePlacer{carts: s.carts}
	s.flow = checkout.NewFlow(s.carts, s.profiles, s.placer, zap.NewNop())
}

func (s *FlowSuite) ctx(action, text string) *chat.Context {
	return &chat.Context{
		Ctx:    context.Background(),
		UserID: 7,
		ChatID: 7,
		Action: action,
		Text:   text,
		State:  state.NewHandle(s.store, 7, time.Hour),
		T:      s.bundle.For("ru"),
	}
}

func (s *FlowSuite) press(action string) []chat.Reply {
	replies, err := s.flow.HandleAction(s.ctx(action, ""))
	s.Require().NoError(err)
	return replies
}

func (s *FlowSuite) send(text string) []chat.Reply {
	replies, err := s.flow.HandleText(s.ctx("", text))
	s.Require().NoError(err)
	return replies
}

func (s *FlowSuite) draft() (string, checkout.Draft) {
	var d checkout.Draft
	step, err := state.NewHandle(s.store, 7, time.Hour).Load(context.Background(), &d)
	s.Require().NoError(err)
	return step, d
}

func actions(replies []chat.Reply) []string {
	var out []string
	for _, r := range replies {
		for _, row := range r.Keyboard {
			for _, b := range row {
				out = append(out, b.Action)
			}
		}
	}
	return out
}

func (s *FlowSuite) TestPickupHappyPath() {
	s.press(checkout.ActionStart)
	step, _ := s.draft()
	s.Equal(checkout.StepCollectingName, step)

	s.send("иван петров")
	s.send("79991234567")
	s.send("-")
	s.press(checkout.ActionPayCash)
	replies := s.press(checkout.ActionPickup)

	step, d := s.draft()
	s.Equal(checkout.StepConfirm, step)
	s.Equal("Иван Петров", d.Name)
	s.Equal(models.NotSpecified, d.Address)
	s.Contains(actions(replies), checkout.ActionConfirm)
	s.Contains(replies[0].Text, "250")

	replies = s.press(checkout.ActionConfirm)
	s.Contains(replies[0].Text, "42")

	want := []models.OrderDetails{{
		FullName: "Иван Петров",
		Phone:    "79991234567",
		Address:  models.NotSpecified,
		Comment:  models.NotSpecified,
		Payment:  models.PaymentCash,
		Delivery: models.DeliveryPickup,
	}}
	if diff := cmp.Diff(want, s.placer.details); diff != "" {
		s.T().Errorf("placed details mismatch (-want +got):\n%s", diff)
	}

	step, _ = s.draft()
	s.Empty(step)
	s.Require().Len(s.profiles.saved, 1)
	s.Equal("", s.profiles.saved[0].Address)
}

func (s *FlowSuite) TestCourierSavesAddress() {
	s.press(checkout.ActionStart)
	s.send("Анна")
	s.send("79990000000")
	s.send("позвонить заранее")
	s.press(checkout.ActionPayCash)
	s.press(checkout.ActionCourier)

	step, _ := s.draft()
	s.Equal(checkout.StepCollectingAddress, step)

	s.send("ул. Ленина, д. 5")
	step, d := s.draft()
	s.Equal(checkout.StepConfirm, step)
	s.Equal("ул. Ленина, д. 5", d.Address)

	s.press(checkout.ActionConfirm)
	s.Require().Len(s.profiles.saved, 1)
	s.Equal("ул. Ленина, д. 5", s.profiles.saved[0].Address)
}

func (s *FlowSuite) TestProfilePrefill() {
	s.profiles.user = &models.User{ID: 7, FullName: "Анна", Phone: "79990000000", Address: "ул. Мира, 1"}

	replies := s.press(checkout.ActionStart)
	step, _ := s.draft()
	s.Equal(checkout.StepProfileChoice, step)
	s.Contains(actions(replies), checkout.ActionUseProfile)

	s.press(checkout.ActionUseProfile)
	step, d := s.draft()
	s.Equal(checkout.StepCollectingComment, step)
	s.Equal("Анна", d.Name)
	s.Equal("79990000000", d.Phone)

	s.send("-")
	s.press(checkout.ActionPayCash)
	replies = s.press(checkout.ActionCourier)
	step, _ = s.draft()
	s.Equal(checkout.StepAddressChoice, step)
	s.Contains(actions(replies), checkout.ActionUseProfileAddress)

	s.press(checkout.ActionUseProfileAddress)
	step, d = s.draft()
	s.Equal(checkout.StepConfirm, step)
	s.Equal("ул. Мира, 1", d.Address)
}

func (s *FlowSuite) TestInvalidInputKeepsStep() {
	s.press(checkout.ActionStart)
	s.send("Иван")

	s.send("12-34")
	step, d := s.draft()
	s.Equal(checkout.StepCollectingPhone, step)
	s.Equal("Иван", d.Name)
	s.Empty(d.Phone)

	s.send("1")
	step, _ = s.draft()
	s.Equal(checkout.StepCollectingPhone, step)
}

func (s *FlowSuite) TestTextOnButtonStep() {
	s.press(checkout.ActionStart)
	s.send("Иван")
	s.send("79991234567")
	s.send("-")

	replies := s.send("наличными")
	step, _ := s.draft()
	s.Equal(checkout.StepChoosingPayment, step)
	s.Contains(actions(replies), checkout.ActionPayCash)
}

func (s *FlowSuite) TestPaymentNotAvailable() {
	s.press(checkout.ActionStart)
	s.send("Иван")
	s.send("79991234567")
	s.send("-")

	for _, action := range []string{checkout.ActionPayCard, checkout.ActionPayYooMoney} {
		replies := s.press(action)
		s.Require().NotEmpty(replies)
		s.NotEmpty(replies[0].Alert)
		step, d := s.draft()
		s.Equal(checkout.StepChoosingPayment, step)
		s.Empty(d.Payment)
	}
}

func (s *FlowSuite) TestEmptyCart() {
	s.carts.lines = nil
	replies := s.press(checkout.ActionStart)
	s.Require().Len(replies, 1)
	s.Contains(actions(replies), chat.ActionCatalog)

	step, _ := s.draft()
	s.Empty(step)
	s.Empty(s.placer.details)
}

func (s *FlowSuite) TestCartEmptiedBeforeConfirm() {
	s.toConfirm()
	s.carts.lines = nil

	s.press(checkout.ActionConfirm)
	step, _ := s.draft()
	s.Empty(step)
	s.Empty(s.placer.details)
	s.Empty(s.profiles.saved)
}

func (s *FlowSuite) TestDoubleConfirm() {
	s.toConfirm()
	s.press(checkout.ActionConfirm)

	replies := s.press(checkout.ActionConfirm)
	s.Len(s.placer.details, 1)
	s.Require().NotEmpty(replies)
	s.NotEmpty(replies[0].Alert)
}

func (s *FlowSuite) TestEditReturnsToConfirm() {
	s.toConfirm()

	replies := s.press(checkout.ActionEditData)
	s.NotContains(actions(replies), checkout.ActionEditAddress)

	replies = s.press(checkout.ActionEditAddress)
	s.NotEmpty(replies[0].Alert)

	s.press(checkout.ActionEditPhone)
	step, _ := s.draft()
	s.Equal(checkout.StepEditingPhone, step)

	s.send("70000000000")
	step, d := s.draft()
	s.Equal(checkout.StepConfirm, step)
	s.Equal("70000000000", d.Phone)
	s.Equal(models.DeliveryPickup, d.Delivery)

	s.press(checkout.ActionEditDelivery)
	s.press(checkout.ActionCourier)
	step, _ = s.draft()
	s.Equal(checkout.StepCollectingAddress, step)
}

func (s *FlowSuite) TestCourierFromEditReturnsToConfirm() {
	s.toConfirm()

	s.press(checkout.ActionEditDelivery)
	replies := s.press(checkout.ActionCourier)
	step, d := s.draft()
	s.Equal(checkout.StepCollectingAddress, step)
	s.True(d.Editing)
	s.Contains(actions(replies), checkout.ActionBackToConfirm)
	s.NotContains(actions(replies), checkout.ActionCancel)

	s.press(checkout.ActionBackToConfirm)
	step, d = s.draft()
	s.Equal(checkout.StepConfirm, step)
	s.Equal(models.DeliveryPickup, d.Delivery, "no address given, delivery stays pickup")
	s.Equal(models.NotSpecified, d.Address)
	s.False(d.Editing)

	s.press(checkout.ActionEditDelivery)
	s.press(checkout.ActionCourier)
	replies = s.send("ул")
	step, _ = s.draft()
	s.Equal(checkout.StepCollectingAddress, step)
	s.Contains(actions(replies), checkout.ActionBackToConfirm, "invalid address keeps the way back")
	s.NotContains(actions(replies), checkout.ActionCancel)

	s.send("ул. Ленина, д. 5")
	step, d = s.draft()
	s.Equal(checkout.StepConfirm, step)
	s.Equal(models.DeliveryCourier, d.Delivery)
	s.Equal("ул. Ленина, д. 5", d.Address)
	s.False(d.Editing)
}

func (s *FlowSuite) TestAddressChoiceFromEditReturnsToConfirm() {
	s.toConfirm()
	s.profiles.user = &models.User{ID: 7, FullName: "Анна", Phone: "79990000000", Address: "ул. Мира, 1"}

	s.press(checkout.ActionEditDelivery)
	replies := s.press(checkout.ActionCourier)
	step, _ := s.draft()
	s.Equal(checkout.StepAddressChoice, step)
	s.Contains(actions(replies), checkout.ActionBackToConfirm)
	s.NotContains(actions(replies), checkout.ActionCancel)

	s.press(checkout.ActionUseProfileAddress)
	step, d := s.draft()
	s.Equal(checkout.StepConfirm, step)
	s.Equal("ул. Мира, 1", d.Address)
	s.Equal(models.DeliveryCourier, d.Delivery)
}

func (s *FlowSuite) TestBackFromEdit() {
	s.toConfirm()
	s.press(checkout.ActionEditComment)

	s.press(checkout.ActionBackToConfirm)
	step, d := s.draft()
	s.Equal(checkout.StepConfirm, step)
	s.Equal(models.NotSpecified, d.Comment)
}

func (s *FlowSuite) TestStaleButton() {
	s.toConfirm()

	replies := s.press(checkout.ActionPayCash)
	s.NotEmpty(replies[0].Alert)
	step, _ := s.draft()
	s.Equal(checkout.StepConfirm, step)
}

func (s *FlowSuite) TestCancel() {
	s.toConfirm()
	s.press(checkout.ActionCancel)
	step, _ := s.draft()
	s.Empty(step)
}

func (s *FlowSuite) toConfirm() {
	s.press(checkout.ActionStart)
	s.send("Иван")
	s.send("79991234567")
	s.send("-")
	s.press(checkout.ActionPayCash)
	s.press(checkout.ActionPickup)
	step, _ := s.draft()
	s.Require().Equal(checkout.StepConfirm, step)
}

func TestActionsCoverEveryButton(t *testing.T) {
	all := checkout.Actions()
	assert.Contains(t, all, checkout.ActionStart)
	assert.Contains(t, all, checkout.ActionConfirm)
	require.Len(t, all, 20)
}
