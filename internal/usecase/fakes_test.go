package usecase

import (
	"context"

	"github.com/google/uuid"

	"bricsbtc/internal/domain"
	"bricsbtc/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetAdmins(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdateKYCStatus(_ context.Context, userID uuid.UUID, status string) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.KYCStatus = status
	u.KYC = status == domain.KYCApproved
	return nil
}

func (r *fakeUserRepo) AdjustBalance(_ context.Context, userID uuid.UUID, delta float64) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	if u.Balance+delta < 0 {
		return repository.ErrInsufficientBalance
	}
	u.Balance += delta
	return nil
}

func (r *fakeUserRepo) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount float64) error {
	if err := r.AdjustBalance(ctx, fromID, -amount); err != nil {
		return err
	}
	return r.AdjustBalance(ctx, toID, amount)
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SaveKYCDocument(_ context.Context, _ *domain.KYCDocument) error { return nil }

func (r *fakeUserRepo) GetKYCDocuments(_ context.Context, _ uuid.UUID) ([]*domain.KYCDocument, error) {
	return nil, nil
}

type fakeOfferRepo struct {
	offers map[uuid.UUID]*domain.OfferDetail
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: map[uuid.UUID]*domain.OfferDetail{}}
}

func (r *fakeOfferRepo) Create(_ context.Context, o *domain.Offer) error {
	r.offers[o.ID] = &domain.OfferDetail{Offer: *o}
	return nil
}

func (r *fakeOfferRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.OfferDetail, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

func (r *fakeOfferRepo) GetAll(_ context.Context) ([]*domain.OfferDetail, error) {
	out := make([]*domain.OfferDetail, 0, len(r.offers))
	for _, o := range r.offers {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOfferRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	o, ok := r.offers[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Active = active
	return nil
}

func (r *fakeOfferRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.offers, id)
	return nil
}

type fakeTradeRepo struct {
	trades map[uuid.UUID]*domain.Trade
	offers *fakeOfferRepo
}

func newFakeTradeRepo(offers *fakeOfferRepo) *fakeTradeRepo {
	return &fakeTradeRepo{trades: map[uuid.UUID]*domain.Trade{}, offers: offers}
}

func (r *fakeTradeRepo) Create(_ context.Context, t *domain.Trade) error {
	r.trades[t.ID] = t
	return nil
}

func (r *fakeTradeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeDetail, error) {
	t, ok := r.trades[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	detail := &domain.TradeDetail{Trade: *t}
	if r.offers != nil {
		detail.Offer, _ = r.offers.GetByID(ctx, t.OfferID)
	}
	return detail, nil
}

func (r *fakeTradeRepo) GetByUser(_ context.Context, userID uuid.UUID, _ int) ([]*domain.Trade, error) {
	var out []*domain.Trade
	for _, t := range r.trades {
		if t.BuyerID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTradeRepo) GetAll(_ context.Context) ([]*domain.TradeDetail, error) {
	out := make([]*domain.TradeDetail, 0, len(r.trades))
	for _, t := range r.trades {
		out = append(out, &domain.TradeDetail{Trade: *t})
	}
	return out, nil
}

func (r *fakeTradeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	t, ok := r.trades[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTradeRepo) ExpirePastWindow(_ context.Context) (int64, error) { return 0, nil }

func (r *fakeTradeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.trades, id)
	return nil
}

type fakeDepositRepo struct {
	deposits map[uuid.UUID]*domain.Deposit
}

func newFakeDepositRepo() *fakeDepositRepo {
	return &fakeDepositRepo{deposits: map[uuid.UUID]*domain.Deposit{}}
}

func (r *fakeDepositRepo) Create(_ context.Context, d *domain.Deposit) error {
	r.deposits[d.ID] = d
	return nil
}

func (r *fakeDepositRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Deposit, error) {
	d, ok := r.deposits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (r *fakeDepositRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]*domain.Deposit, error) {
	var out []*domain.Deposit
	for _, d := range r.deposits {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDepositRepo) GetAll(_ context.Context) ([]*domain.Deposit, error) {
	out := make([]*domain.Deposit, 0, len(r.deposits))
	for _, d := range r.deposits {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDepositRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	d, ok := r.deposits[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Status = status
	return nil
}

type fakePackageRepo struct {
	packages map[uuid.UUID]*domain.InvestPackage
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{packages: map[uuid.UUID]*domain.InvestPackage{}}
}

func (r *fakePackageRepo) Create(_ context.Context, p *domain.InvestPackage) error {
	r.packages[p.ID] = p
	return nil
}

func (r *fakePackageRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.InvestPackage, error) {
	p, ok := r.packages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakePackageRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]*domain.InvestPackage, error) {
	var out []*domain.InvestPackage
	for _, p := range r.packages {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePackageRepo) GetAll(_ context.Context) ([]*domain.InvestPackage, error) {
	out := make([]*domain.InvestPackage, 0, len(r.packages))
	for _, p := range r.packages {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePackageRepo) GetAccruable(_ context.Context) ([]*domain.InvestPackage, error) {
	var out []*domain.InvestPackage
	for _, p := range r.packages {
		if p.Status == domain.PackageActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePackageRepo) MarkAccrued(_ context.Context, id uuid.UUID, accruedDays int, status string) error {
	p, ok := r.packages[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.AccruedDays = accruedDays
	p.Status = status
	return nil
}

func (r *fakePackageRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.packages, id)
	return nil
}

type fakeNotificationRepo struct {
	notifications []*domain.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeTransactionRepo struct {
	transactions []*domain.Transaction
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *fakeTransactionRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}
