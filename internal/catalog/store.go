package catalog

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
	"github.com/rewear-app/rewear-backend/pkg/metrics"
)

// Store is the single source of truth for listings and swap requests. Every
// mutation recomputes the affected collection immutably (replace-on-match by
// id) under one lock and republishes it, so the two-write swap approval is
// atomic with respect to readers. Accessors hand out copies; callers must not
// mutate what they receive.
type Store struct {
	mu         sync.RWMutex
	items      []Item
	requests   []SwapRequest
	version    uint64
	watchers   map[int]chan struct{}
	watcherSeq int

	metrics *metrics.StoreMetrics
	now     func() time.Time
	newID   func() string
}

// Option customizes store construction.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides id assignment.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithMetrics attaches mutation counters.
func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(s *Store) { s.metrics = m }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		watchers: map[int]chan struct{}{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces both collections wholesale. Used for seeding demo data and
// tests; it does not pass through the transition checks.
func (s *Store) Load(items []Item, requests []SwapRequest) {
	s.mu.Lock()
	s.items = slices.Clone(items)
	s.requests = slices.Clone(requests)
	s.commitLocked("load")
	s.mu.Unlock()
}

// Items returns a copy of the item collection in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// SwapRequests returns a copy of the swap request collection in insertion order.
func (s *Store) SwapRequests() []SwapRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.requests)
}

// Item looks up a single listing by id.
func (s *Store) Item(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// SwapRequest looks up a single swap request by id.
func (s *Store) SwapRequest(id string) (SwapRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, request := range s.requests {
		if request.ID == id {
			return request, true
		}
	}
	return SwapRequest{}, false
}

// Version returns the current store version, bumped on every commit.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers a watcher notified after every committed mutation. The
// returned cancel func must be called to release the watcher. Notifications
// are best-effort: a slow watcher misses intermediate commits, never blocks
// the store.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.watcherSeq
	s.watcherSeq++
	ch := make(chan struct{}, 1)
	s.watchers[id] = ch
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
	}
	return ch, cancel
}

// AddItem appends a new listing. The initial status is forced to
// under_review regardless of caller intent; field validation is the HTTP
// layer's responsibility.
func (s *Store) AddItem(input NewItemInput) Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := Item{
		ID:             s.newID(),
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Type:           input.Type,
		Size:           input.Size,
		Condition:      input.Condition,
		Tags:           slices.Clone(input.Tags),
		Images:         slices.Clone(input.Images),
		UploaderID:     input.UploaderID,
		UploaderName:   input.UploaderName,
		UploaderAvatar: input.UploaderAvatar,
		Status:         ItemStatusUnderReview,
		Points:         input.Points,
		CreatedAt:      s.now(),
	}

	next := make([]Item, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, item)
	s.items = next
	s.commitLocked("add_item")
	return item
}

// UpdateItemStatus moves a listing to the given status, enforcing the
// transition table. Moving into available stamps the approval time, also on
// repeat approvals.
func (s *Store) UpdateItemStatus(id string, status ItemStatus) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateItemStatusLocked("update_item_status", id, status)
}

// ApproveItem releases a listing from moderation into the browsable pool.
func (s *Store) ApproveItem(id string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateItemStatusLocked("approve_item", id, ItemStatusAvailable)
}

// RejectItem marks a listing as rejected by moderation.
func (s *Store) RejectItem(id string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateItemStatusLocked("reject_item", id, ItemStatusPending)
}

func (s *Store) updateItemStatusLocked(op, id string, status ItemStatus) (Item, error) {
	idx := slices.IndexFunc(s.items, func(i Item) bool { return i.ID == id })
	if idx < 0 {
		s.metrics.IncFailure(op)
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	current := s.items[idx]
	if !CanTransition(current.Status, status) {
		s.metrics.IncFailure(op)
		return Item{}, invalidTransition(id, current.Status, status)
	}

	updated := current
	updated.Status = status
	if status == ItemStatusAvailable {
		approvedAt := s.now()
		updated.ApprovedAt = &approvedAt
	}

	next := slices.Clone(s.items)
	next[idx] = updated
	s.items = next
	s.commitLocked(op)
	return updated, nil
}

// DeleteItem removes exactly one listing, preserving the order of survivors.
// Swap requests referencing the listing are left in place; readers tolerate
// the dangling reference.
func (s *Store) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.items, func(i Item) bool { return i.ID == id })
	if idx < 0 {
		s.metrics.IncFailure("delete_item")
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}

	next := make([]Item, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.items = next
	s.commitLocked("delete_item")
	return nil
}

// RequestSwap appends a pending swap request for an existing listing. A
// requester may hold several pending requests for the same item.
func (s *Store) RequestSwap(itemID, requesterID, requesterName, message string) (SwapRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.ContainsFunc(s.items, func(i Item) bool { return i.ID == itemID }) {
		s.metrics.IncFailure("request_swap")
		return SwapRequest{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}

	request := SwapRequest{
		ID:            s.newID(),
		ItemID:        itemID,
		RequesterID:   requesterID,
		RequesterName: requesterName,
		Status:        RequestStatusPending,
		Message:       message,
		CreatedAt:     s.now(),
	}

	next := make([]SwapRequest, 0, len(s.requests)+1)
	next = append(next, s.requests...)
	next = append(next, request)
	s.requests = next
	s.commitLocked("request_swap")
	return request, nil
}

// ApproveSwapRequest marks the request approved and the referenced listing
// swapped in a single commit. Re-approving an approved request is a no-op.
// A request whose listing was deleted is still approvable; the approval then
// carries no item.
func (s *Store) ApproveSwapRequest(id string) (SwapApproval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqIdx := slices.IndexFunc(s.requests, func(r SwapRequest) bool { return r.ID == id })
	if reqIdx < 0 {
		s.metrics.IncFailure("approve_swap_request")
		return SwapApproval{}, pkgerrors.New(pkgerrors.CodeNotFound, "swap request not found")
	}
	request := s.requests[reqIdx]

	if request.Status == RequestStatusApproved {
		approval := SwapApproval{Request: request}
		if itemIdx := slices.IndexFunc(s.items, func(i Item) bool { return i.ID == request.ItemID }); itemIdx >= 0 {
			item := s.items[itemIdx]
			approval.Item = &item
		}
		return approval, nil
	}
	if request.Status != RequestStatusPending {
		s.metrics.IncFailure("approve_swap_request")
		return SwapApproval{}, pkgerrors.New(pkgerrors.CodeStateConflict, "swap request already resolved").
			WithDetails(map[string]any{"request_id": id, "status": string(request.Status)})
	}

	itemIdx := slices.IndexFunc(s.items, func(i Item) bool { return i.ID == request.ItemID })
	var updatedItem *Item
	nextItems := s.items
	if itemIdx >= 0 {
		current := s.items[itemIdx]
		if !CanTransition(current.Status, ItemStatusSwapped) {
			s.metrics.IncFailure("approve_swap_request")
			return SwapApproval{}, invalidTransition(current.ID, current.Status, ItemStatusSwapped)
		}
		item := current
		item.Status = ItemStatusSwapped
		nextItems = slices.Clone(s.items)
		nextItems[itemIdx] = item
		updatedItem = &item
	}

	updatedRequest := request
	updatedRequest.Status = RequestStatusApproved
	nextRequests := slices.Clone(s.requests)
	nextRequests[reqIdx] = updatedRequest

	// Both collections are republished inside one critical section, so no
	// reader observes an approved request with a still-available item.
	s.items = nextItems
	s.requests = nextRequests
	s.commitLocked("approve_swap_request")
	return SwapApproval{Request: updatedRequest, Item: updatedItem}, nil
}

// DeclineSwapRequest resolves the request negatively; the listing is untouched.
// Declining an already-declined request is a no-op.
func (s *Store) DeclineSwapRequest(id string) (SwapRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.requests, func(r SwapRequest) bool { return r.ID == id })
	if idx < 0 {
		s.metrics.IncFailure("decline_swap_request")
		return SwapRequest{}, pkgerrors.New(pkgerrors.CodeNotFound, "swap request not found")
	}
	request := s.requests[idx]

	if request.Status == RequestStatusDeclined {
		return request, nil
	}
	if request.Status != RequestStatusPending {
		s.metrics.IncFailure("decline_swap_request")
		return SwapRequest{}, pkgerrors.New(pkgerrors.CodeStateConflict, "swap request already resolved").
			WithDetails(map[string]any{"request_id": id, "status": string(request.Status)})
	}

	updated := request
	updated.Status = RequestStatusDeclined
	next := slices.Clone(s.requests)
	next[idx] = updated
	s.requests = next
	s.commitLocked("decline_swap_request")
	return updated, nil
}

func (s *Store) commitLocked(op string) {
	s.version++
	s.metrics.IncMutation(op)
	s.metrics.SetCollectionSizes(len(s.items), len(s.requests))
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
