package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"playden/config"
	"playden/internal/domain/entity"
	"playden/internal/domain/repository"
	"playden/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(reserveMinutes int) *config.Config {
	return &config.Config{
		Session: &config.SessionConfig{ReserveMinutes: reserveMinutes},
	}
}

// fakeStore is shared in-memory state behind the fake repositories. The
// ledger invariants under test are stateful (balances, idempotency keys,
// active-session uniqueness), so the fakes track real state instead of
// scripted expectations.
type fakeStore struct {
	users        map[uuid.UUID]*entity.User
	wallets      map[uuid.UUID]*entity.Wallet // keyed by user ID
	transactions []*entity.Transaction
	rooms        map[uuid.UUID]*entity.Room
	sessions     map[uuid.UUID]*entity.Session
	menuItems    map[uuid.UUID]*entity.MenuItem
	orders       map[uuid.UUID]*entity.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[uuid.UUID]*entity.User),
		wallets:   make(map[uuid.UUID]*entity.Wallet),
		rooms:     make(map[uuid.UUID]*entity.Room),
		sessions:  make(map[uuid.UUID]*entity.Session),
		menuItems: make(map[uuid.UUID]*entity.MenuItem),
		orders:    make(map[uuid.UUID]*entity.Order),
	}
}

func (s *fakeStore) seedUserWithWallet(balance int64) *entity.User {
	user := &entity.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hashed:password",
		Role:         entity.RoleCustomer,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	s.wallets[user.ID] = &entity.Wallet{
		ID:      uuid.New(),
		UserID:  user.ID,
		Balance: balance,
	}

	return user
}

func (s *fakeStore) seedRoom(status entity.RoomStatus, pricePerMinute int64) *entity.Room {
	room := &entity.Room{
		ID:             uuid.New(),
		RoomNumber:     "R-" + uuid.NewString()[:4],
		Name:           "Test Room",
		Status:         status,
		PricePerMinute: pricePerMinute,
		ConsoleType:    "PS5",
		Capacity:       4,
	}
	s.rooms[room.ID] = room

	return room
}

func (s *fakeStore) seedMenuItem(name string, price int64, available bool) *entity.MenuItem {
	item := &entity.MenuItem{
		ID:          uuid.New(),
		Name:        name,
		Price:       price,
		Category:    "drinks",
		IsAvailable: available,
	}
	s.menuItems[item.ID] = item

	return item
}

func (s *fakeStore) walletOf(userID uuid.UUID) *entity.Wallet {
	return s.wallets[userID]
}

// fakeTxManager runs the unit of work directly against the shared store.
// Rollback is not simulated: every flow under test fails before its first
// write or not at all, which the assertions rely on.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func newFakeTxManager(store *fakeStore) *fakeTxManager {
	return &fakeTxManager{factory: &fakeRepoFactory{store: store}}
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type fakeRepoFactory struct {
	store *fakeStore
}

func (f *fakeRepoFactory) NewUserRepository() repository.UserRepository {
	return &fakeUserRepo{store: f.store}
}

func (f *fakeRepoFactory) NewWalletRepository() repository.WalletRepository {
	return &fakeWalletRepo{store: f.store}
}

func (f *fakeRepoFactory) NewTransactionRepository() repository.TransactionRepository {
	return &fakeTransactionRepo{store: f.store}
}

func (f *fakeRepoFactory) NewRoomRepository() repository.RoomRepository {
	return &fakeRoomRepo{store: f.store}
}

func (f *fakeRepoFactory) NewSessionRepository() repository.SessionRepository {
	return &fakeSessionRepo{store: f.store}
}

func (f *fakeRepoFactory) NewMenuRepository() repository.MenuRepository {
	return &fakeMenuRepo{store: f.store}
}

func (f *fakeRepoFactory) NewOrderRepository() repository.OrderRepository {
	return &fakeOrderRepo{store: f.store}
}

func (f *fakeRepoFactory) NewStatsRepository() repository.StatsRepository {
	return &fakeStatsRepo{}
}

// --- user ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	r.store.users[user.ID] = user

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.store.users[user.ID] = user

	return nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })

	return page(users, limit, offset), nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.store.users)), nil
}

// --- wallet and ledger ---

type fakeWalletRepo struct {
	store *fakeStore
}

func (r *fakeWalletRepo) Create(_ context.Context, wallet *entity.Wallet) error {
	r.store.wallets[wallet.UserID] = wallet

	return nil
}

func (r *fakeWalletRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	wallet, ok := r.store.wallets[userID]
	if !ok {
		return nil, repository.ErrWalletNotFound
	}

	return wallet, nil
}

func (r *fakeWalletRepo) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	return r.FindByUserID(ctx, userID)
}

func (r *fakeWalletRepo) UpdateBalance(_ context.Context, walletID uuid.UUID, balance int64) error {
	for _, wallet := range r.store.wallets {
		if wallet.ID == walletID {
			wallet.Balance = balance

			return nil
		}
	}

	return repository.ErrWalletNotFound
}

type fakeTransactionRepo struct {
	store *fakeStore
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	if tx.ExternalRef != "" {
		for _, existing := range r.store.transactions {
			if existing.ExternalRef == tx.ExternalRef {
				return repository.ErrDuplicateExternalRef
			}
		}
	}
	tx.CreatedAt = time.Now()
	r.store.transactions = append(r.store.transactions, tx)

	return nil
}

func (r *fakeTransactionRepo) FindByExternalRef(_ context.Context, externalRef string) (*entity.Transaction, error) {
	for _, tx := range r.store.transactions {
		if tx.ExternalRef == externalRef {
			return tx, nil
		}
	}

	return nil, repository.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByWalletID(_ context.Context, walletID uuid.UUID, limit, offset int) ([]*entity.Transaction, error) {
	matches := make([]*entity.Transaction, 0)
	for i := len(r.store.transactions) - 1; i >= 0; i-- {
		if r.store.transactions[i].WalletID == walletID {
			matches = append(matches, r.store.transactions[i])
		}
	}

	return page(matches, limit, offset), nil
}

func (r *fakeTransactionRepo) CountByWalletID(_ context.Context, walletID uuid.UUID) (int64, error) {
	var count int64
	for _, tx := range r.store.transactions {
		if tx.WalletID == walletID {
			count++
		}
	}

	return count, nil
}

func (r *fakeTransactionRepo) SumByType(_ context.Context, txType entity.TransactionType) (int64, error) {
	var sum int64
	for _, tx := range r.store.transactions {
		if tx.Type == txType {
			sum += tx.Amount
		}
	}

	return sum, nil
}

// --- room ---

type fakeRoomRepo struct {
	store *fakeStore
}

func (r *fakeRoomRepo) Create(_ context.Context, room *entity.Room) error {
	for _, existing := range r.store.rooms {
		if existing.RoomNumber == room.RoomNumber {
			return repository.ErrDuplicateRoomNumber
		}
	}
	r.store.rooms[room.ID] = room

	return nil
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	room, ok := r.store.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}

	return room, nil
}

func (r *fakeRoomRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeRoomRepo) FindByRoomNumber(_ context.Context, roomNumber string) (*entity.Room, error) {
	for _, room := range r.store.rooms {
		if room.RoomNumber == roomNumber {
			return room, nil
		}
	}

	return nil, repository.ErrRoomNotFound
}

func (r *fakeRoomRepo) List(_ context.Context, status *entity.RoomStatus) ([]*entity.Room, error) {
	rooms := make([]*entity.Room, 0, len(r.store.rooms))
	for _, room := range r.store.rooms {
		if status != nil && room.Status != *status {
			continue
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })

	return rooms, nil
}

func (r *fakeRoomRepo) Update(_ context.Context, room *entity.Room) error {
	if _, ok := r.store.rooms[room.ID]; !ok {
		return repository.ErrRoomNotFound
	}
	r.store.rooms[room.ID] = room

	return nil
}

func (r *fakeRoomRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.RoomStatus) error {
	room, ok := r.store.rooms[id]
	if !ok {
		return repository.ErrRoomNotFound
	}
	room.Status = status

	return nil
}

func (r *fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.rooms, id)

	return nil
}

func (r *fakeRoomRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.store.rooms)), nil
}

// --- session ---

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	if session.Status == entity.SessionActive {
		for _, existing := range r.store.sessions {
			if existing.Status != entity.SessionActive {
				continue
			}
			if existing.UserID == session.UserID || existing.RoomID == session.RoomID {
				return repository.ErrDuplicateActiveSession
			}
		}
	}
	r.store.sessions[session.ID] = session

	return nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	session, ok := r.store.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}

	return session, nil
}

func (r *fakeSessionRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeSessionRepo) FindActiveByUserID(_ context.Context, userID uuid.UUID) (*entity.Session, error) {
	for _, session := range r.store.sessions {
		if session.UserID == userID && session.Status == entity.SessionActive {
			return session, nil
		}
	}

	return nil, repository.ErrSessionNotFound
}

func (r *fakeSessionRepo) FindActiveByRoomID(_ context.Context, roomID uuid.UUID) (*entity.Session, error) {
	for _, session := range r.store.sessions {
		if session.RoomID == roomID && session.Status == entity.SessionActive {
			return session, nil
		}
	}

	return nil, repository.ErrSessionNotFound
}

func (r *fakeSessionRepo) FindAllActive(_ context.Context) ([]*entity.Session, error) {
	sessions := make([]*entity.Session, 0)
	for _, session := range r.store.sessions {
		if session.Status == entity.SessionActive {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.Before(sessions[j].StartTime) })

	return sessions, nil
}

func (r *fakeSessionRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Session, error) {
	sessions := make([]*entity.Session, 0)
	for _, session := range r.store.sessions {
		if session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.After(sessions[j].StartTime) })

	return page(sessions, limit, offset), nil
}

func (r *fakeSessionRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, session := range r.store.sessions {
		if session.UserID == userID {
			count++
		}
	}

	return count, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *entity.Session) error {
	if _, ok := r.store.sessions[session.ID]; !ok {
		return repository.ErrSessionNotFound
	}
	r.store.sessions[session.ID] = session

	return nil
}

func (r *fakeSessionRepo) List(_ context.Context, limit, offset int) ([]*entity.Session, error) {
	sessions := make([]*entity.Session, 0, len(r.store.sessions))
	for _, session := range r.store.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.After(sessions[j].StartTime) })

	return page(sessions, limit, offset), nil
}

func (r *fakeSessionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.store.sessions)), nil
}

// --- menu ---

type fakeMenuRepo struct {
	store *fakeStore
}

func (r *fakeMenuRepo) Create(_ context.Context, item *entity.MenuItem) error {
	for _, existing := range r.store.menuItems {
		if existing.Name == item.Name {
			return repository.ErrDuplicateMenuItemName
		}
	}
	r.store.menuItems[item.ID] = item

	return nil
}

func (r *fakeMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, ok := r.store.menuItems[id]
	if !ok {
		return nil, repository.ErrMenuItemNotFound
	}

	return item, nil
}

func (r *fakeMenuRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.MenuItem, error) {
	items := make([]*entity.MenuItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.store.menuItems[id]; ok {
			items = append(items, item)
		}
	}

	return items, nil
}

func (r *fakeMenuRepo) List(_ context.Context, category string, availableOnly bool) ([]*entity.MenuItem, error) {
	items := make([]*entity.MenuItem, 0)
	for _, item := range r.store.menuItems {
		if category != "" && item.Category != category {
			continue
		}
		if availableOnly && !item.IsAvailable {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	return items, nil
}

func (r *fakeMenuRepo) ListCategories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, item := range r.store.menuItems {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	sort.Strings(categories)

	return categories, nil
}

func (r *fakeMenuRepo) Update(_ context.Context, item *entity.MenuItem) error {
	if _, ok := r.store.menuItems[item.ID]; !ok {
		return repository.ErrMenuItemNotFound
	}
	r.store.menuItems[item.ID] = item

	return nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.menuItems, id)

	return nil
}

// --- order ---

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	order.CreatedAt = time.Now()
	r.store.orders[order.ID] = order

	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return order, nil
}

func (r *fakeOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0)
	for _, order := range r.store.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })

	return page(orders, limit, offset), nil
}

func (r *fakeOrderRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, order := range r.store.orders {
		if order.UserID == userID {
			count++
		}
	}

	return count, nil
}

func (r *fakeOrderRepo) List(_ context.Context, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0)
	for _, order := range r.store.orders {
		if status != nil && order.Status != *status {
			continue
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })

	return page(orders, limit, offset), nil
}

func (r *fakeOrderRepo) Count(_ context.Context, status *entity.OrderStatus) (int64, error) {
	var count int64
	for _, order := range r.store.orders {
		if status != nil && order.Status != *status {
			continue
		}
		count++
	}

	return count, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) error {
	order, ok := r.store.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = status

	return nil
}

// --- stats ---

type fakeStatsRepo struct{}

func (r *fakeStatsRepo) PlatformStats(_ context.Context, _ time.Time) (*repository.PlatformStats, error) {
	return &repository.PlatformStats{}, nil
}

func (r *fakeStatsRepo) RecentActivity(_ context.Context, _ int) ([]*repository.ActivityEntry, error) {
	return nil, nil
}

// --- domain services ---

type fakePublisher struct {
	events []*service.BroadcastEvent
}

func (p *fakePublisher) PublishBroadcastEvent(_ context.Context, event *service.BroadcastEvent) error {
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) eventNames() []string {
	names := make([]string, 0, len(p.events))
	for _, event := range p.events {
		names = append(names, event.Event)
	}

	return names
}

type fakeNotification struct {
	topics []string
	users  []string
}

func (n *fakeNotification) SendToUser(_ context.Context, userID string, _, _ string, _ map[string]string) error {
	n.users = append(n.users, userID)

	return nil
}

func (n *fakeNotification) SendToTopic(_ context.Context, topic string, _, _ string, _ map[string]string) error {
	n.topics = append(n.topics, topic)

	return nil
}

type fakeHasher struct{}

func (h *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct{}

func (s *fakeTokenService) GenerateTokens(_ uuid.UUID, _ []string) (string, string, error) {
	return "access-token", "refresh-token", nil
}

func (s *fakeTokenService) ValidateToken(_ string) (*service.Claims, error) {
	return nil, errors.New("not supported")
}

func (s *fakeTokenService) GetRefreshTokenDuration() time.Duration {
	return 7 * 24 * time.Hour
}

// fakeRoomTokens maps tokens to room IDs without real signing.
type fakeRoomTokens struct {
	tokens map[string]uuid.UUID
}

func newFakeRoomTokens() *fakeRoomTokens {
	return &fakeRoomTokens{tokens: make(map[string]uuid.UUID)}
}

func (s *fakeRoomTokens) Sign(roomID uuid.UUID) (string, error) {
	token := "room-token-" + roomID.String()
	s.tokens[token] = roomID

	return token, nil
}

func (s *fakeRoomTokens) Verify(token string) (uuid.UUID, error) {
	roomID, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, errors.New("invalid token")
	}

	return roomID, nil
}

// fakeGateway simulates the card provider with pre-registered intents.
type fakeGateway struct {
	intents      map[string]*service.PaymentIntent
	webhookEvent *service.WebhookEvent
	rejectHooks  bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*service.PaymentIntent)}
}

func (g *fakeGateway) registerSucceeded(userID uuid.UUID, amount int64) string {
	id := "pi_" + uuid.NewString()[:8]
	g.intents[id] = &service.PaymentIntent{ID: id, Amount: amount, Currency: "twd", Status: "succeeded", UserID: userID}

	return id
}

func (g *fakeGateway) CreateIntent(_ context.Context, userID uuid.UUID, amount int64) (*service.PaymentIntent, error) {
	id := "pi_" + uuid.NewString()[:8]
	intent := &service.PaymentIntent{ID: id, ClientSecret: id + "_secret", Amount: amount, Currency: "twd", Status: "requires_payment_method", UserID: userID}
	g.intents[id] = intent

	return intent, nil
}

func (g *fakeGateway) ConfirmDeposit(_ context.Context, paymentIntentID string) (*service.PaymentIntent, error) {
	intent, ok := g.intents[paymentIntentID]
	if !ok {
		return nil, errors.New("no such payment intent")
	}
	if intent.Status != "succeeded" {
		return nil, errors.Errorf("payment intent in status %s", intent.Status)
	}

	return intent, nil
}

func (g *fakeGateway) ParseWebhookEvent(_ []byte, _ string) (*service.WebhookEvent, error) {
	if g.rejectHooks || g.webhookEvent == nil {
		return nil, errors.New("signature verification failed")
	}

	return g.webhookEvent, nil
}

type fakeQRCode struct{}

func (f *fakeQRCode) GenerateRoomQR(token string) ([]byte, error) {
	return []byte("png:" + token), nil
}

type fakePosterStore struct {
	saved map[uuid.UUID][]byte
}

func newFakePosterStore() *fakePosterStore {
	return &fakePosterStore{saved: make(map[uuid.UUID][]byte)}
}

func (s *fakePosterStore) SaveRoomPoster(_ context.Context, roomID uuid.UUID, png []byte) error {
	s.saved[roomID] = png

	return nil
}

func (s *fakePosterStore) LoadRoomPoster(_ context.Context, roomID uuid.UUID) ([]byte, error) {
	png, ok := s.saved[roomID]
	if !ok {
		return nil, errors.New("poster not found")
	}

	return png, nil
}

type menuCacheKey struct {
	category      string
	availableOnly bool
}

type fakeMenuCache struct {
	entries     map[menuCacheKey][]*entity.MenuItem
	hits        int
	invalidates int
}

func newFakeMenuCache() *fakeMenuCache {
	return &fakeMenuCache{entries: make(map[menuCacheKey][]*entity.MenuItem)}
}

func (c *fakeMenuCache) GetItems(_ context.Context, category string, availableOnly bool) ([]*entity.MenuItem, bool) {
	items, ok := c.entries[menuCacheKey{category, availableOnly}]
	if ok {
		c.hits++
	}

	return items, ok
}

func (c *fakeMenuCache) SetItems(_ context.Context, category string, availableOnly bool, items []*entity.MenuItem) {
	c.entries[menuCacheKey{category, availableOnly}] = items
}

func (c *fakeMenuCache) Invalidate(_ context.Context) {
	c.entries = make(map[menuCacheKey][]*entity.MenuItem)
	c.invalidates++
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}
