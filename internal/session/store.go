// Package session holds the shopping cart, the signed-in user and the startup
// loading flag, and mirrors cart and user into a key-value store so they
// survive restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// 永続化キー
const (
	KeyCart = "cart"
	KeyUser = "user"
)

const DefaultLoadingDelay = 1500 * time.Millisecond

type Options struct {
	// 起動時の読み込み中表示の長さ。0 ならすぐ終わる。
	LoadingDelay time.Duration
	Logger       *slog.Logger
}

// Store はカートとユーザーの唯一の持ち主。
// 変更はすべて mu の中で「更新→保存」まで行う。
type Store struct {
	mu      sync.RWMutex
	kv      repository.KeyValueStore
	log     *slog.Logger
	cart    []model.CartItem
	user    model.OptionalUser
	loading bool

	ready     chan struct{}
	readyOnce sync.Once
	timer     *time.Timer
}

// NewStore は保存済みのカートとユーザーを復元して Store を作る。
// 壊れたデータや読み込みエラーはその項目だけ初期値にする。
func NewStore(ctx context.Context, kv repository.KeyValueStore, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		kv:      kv,
		log:     logger.With("component", "session"),
		cart:    []model.CartItem{},
		loading: true,
		ready:   make(chan struct{}),
	}

	s.cart = s.restoreCart(ctx)
	s.user = s.restoreUser(ctx)
	s.log.Info("session restored", "cart_lines", len(s.cart), "signed_in", s.user.IsSome())

	if opts.LoadingDelay <= 0 {
		s.finishLoading()
	} else {
		s.timer = time.AfterFunc(opts.LoadingDelay, s.finishLoading)
	}
	return s
}

func (s *Store) restoreCart(ctx context.Context) []model.CartItem {
	raw, err := s.kv.Get(ctx, KeyCart)
	if errors.Is(err, repository.ErrNotFound) {
		return []model.CartItem{}
	}
	if err != nil {
		s.log.Warn("cart read failed, starting empty", "error", err)
		return []model.CartItem{}
	}
	cart, err := decodeCart(raw)
	if err != nil {
		s.log.Warn("stored cart is corrupt, starting empty", "error", err)
		return []model.CartItem{}
	}
	return cart
}

func (s *Store) restoreUser(ctx context.Context) model.OptionalUser {
	raw, err := s.kv.Get(ctx, KeyUser)
	if errors.Is(err, repository.ErrNotFound) {
		return model.NoUser()
	}
	if err != nil {
		s.log.Warn("user read failed, starting signed out", "error", err)
		return model.NoUser()
	}
	u, err := decodeUser(raw)
	if err != nil {
		s.log.Warn("stored user is corrupt, starting signed out", "error", err)
		return model.NoUser()
	}
	return u
}

func (s *Store) finishLoading() {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		close(s.ready)
	})
}

// Ready は読み込み中が終わると close される。
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Cart はカートのコピーを返す。
func (s *Store) Cart() []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyCart()
}

func (s *Store) User() model.OptionalUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.cart)
}

// Snapshot はカートと集計を同じ時点で返す。
func (s *Store) Snapshot() CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// AddToCart は同じIDがあれば数量+1（位置はそのまま、MaxQuantity で止まる）、無ければ末尾に数量1で追加。
// 戻り値は変更直後のカート。保存に失敗しても変更は残り、スナップショットも返す。
func (s *Store) AddToCart(ctx context.Context, item model.FoodItem) (CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.cart[i].Quantity = model.AddQuantity(s.cart[i].Quantity, 1)
	} else {
		s.cart = append(s.cart, model.CartItem{FoodItem: item, Quantity: 1})
	}
	return s.snapshot(), s.saveCart(ctx)
}

// 無いIDは何もしない
func (s *Store) RemoveFromCart(ctx context.Context, id string) (CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		next := make([]model.CartItem, 0, len(s.cart)-1)
		next = append(next, s.cart[:i]...)
		s.cart = append(next, s.cart[i+1:]...)
	}
	return s.snapshot(), s.saveCart(ctx)
}

// UpdateQuantity は数量に delta を足す。1..MaxQuantity に収まり、0にしても削除はしない。
func (s *Store) UpdateQuantity(ctx context.Context, id string, delta int) (CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.cart[i].Quantity = model.AddQuantity(s.cart[i].Quantity, delta)
	}
	return s.snapshot(), s.saveCart(ctx)
}

// 空配列として保存する
func (s *Store) ClearCart(ctx context.Context) (CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = []model.CartItem{}
	return s.snapshot(), s.saveCart(ctx)
}

// SetUser はログイン/ログアウト。ログアウト時は保存レコードごと消す。
func (s *Store) SetUser(ctx context.Context, user model.OptionalUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	u, ok := user.Get()
	if !ok {
		if err := s.kv.Delete(ctx, KeyUser); err != nil {
			return fmt.Errorf("session: delete user: %w", err)
		}
		return nil
	}

	raw, err := encodeUser(u)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUser, raw); err != nil {
		return fmt.Errorf("session: save user: %w", err)
	}
	return nil
}

// Close はまだ動いていない読み込みタイマーを止める。
func (s *Store) Close() {
	if s.timer != nil {
		s.timer.Stop()
	}
}

// mu を持った状態で呼ぶ
func (s *Store) copyCart() []model.CartItem {
	out := make([]model.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

func (s *Store) snapshot() CartSnapshot {
	return CartSnapshot{Items: s.copyCart(), Summary: Summarize(s.cart)}
}

func (s *Store) indexOf(id string) int {
	for i := range s.cart {
		if s.cart[i].ID == id {
			return i
		}
	}
	return -1
}

// mu を持った状態で呼ぶ
func (s *Store) saveCart(ctx context.Context) error {
	raw, err := encodeCart(s.cart)
	if err != nil {
		return fmt.Errorf("session: encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, KeyCart, raw); err != nil {
		return fmt.Errorf("session: save cart: %w", err)
	}
	return nil
}
