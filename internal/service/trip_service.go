package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/tripwrap/internal/calculator"
	"github.com/mmynk/tripwrap/internal/journal"
	"github.com/mmynk/tripwrap/internal/middleware"
	"github.com/mmynk/tripwrap/internal/models"
	"github.com/mmynk/tripwrap/internal/places"
	"github.com/mmynk/tripwrap/internal/recap"
	"github.com/mmynk/tripwrap/internal/storage"
)

// Options tunes the views TripService derives. The zero value is usable.
type Options struct {
	// Location is the zone calendar days are read in. Nil means time.Local.
	Location *time.Location

	// POIRadiusMeters is the journal clustering radius.
	POIRadiusMeters float64

	// HighlightsPerDay caps each recap day.
	HighlightsPerDay int

	// Rand picks journal highlights on days with nothing to rank.
	Rand journal.Rand
}

// TripService implements the Connect TripService.
type TripService struct {
	store    storage.Store
	resolver *places.Resolver
	opts     Options
}

// NewTripService creates a new TripService with the given storage backend.
// resolver may be nil; POIs are then named from cached and saved locations.
func NewTripService(store storage.Store, resolver *places.Resolver, opts Options) *TripService {
	if resolver == nil {
		resolver = places.NewResolver(nil)
	}
	return &TripService{store: store, resolver: resolver, opts: opts}
}

// storeError maps a storage failure to a Connect error.
func storeError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, err)
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

func validAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

// CreateTrip creates a new trip and its member list.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	msg := req.Msg
	if !validAmount(msg.BudgetPerPax) || msg.BudgetPerPax < 0 {
		return nil, invalidArgument("budget_per_pax must be a non-negative number")
	}
	if msg.StartDate != "" && msg.EndDate != "" && msg.EndDate < msg.StartDate {
		return nil, invalidArgument("end_date %s is before start_date %s", msg.EndDate, msg.StartDate)
	}

	trip := &models.Trip{
		Name:         strings.TrimSpace(msg.Name),
		TripCode:     msg.TripCode,
		StartDate:    msg.StartDate,
		EndDate:      msg.EndDate,
		BaseCurrency: strings.ToUpper(msg.BaseCurrency),
		BudgetPerPax: msg.BudgetPerPax,
		Members:      msg.MemberIDs,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, storeError("CreateTrip", err)
	}

	// Re-read so the response carries the de-duplicated member list
	created, err := s.store.GetTrip(ctx, trip.ID)
	if err != nil {
		return nil, storeError("CreateTrip", err)
	}
	slog.Info("Trip created", "trip_id", created.ID, "members", len(created.Members))

	return connect.NewResponse(&CreateTripResponse{Trip: created}), nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	if req.Msg.TripID == "" {
		return nil, invalidArgument("trip_id required")
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, storeError("GetTrip", err)
	}
	return connect.NewResponse(&GetTripResponse{Trip: trip}), nil
}

// AddTransaction records a shared expense.
func (s *TripService) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[AddTransactionResponse], error) {
	tx := req.Msg.Transaction
	switch {
	case tx.TripID == "":
		return nil, invalidArgument("trip_id required")
	case tx.PaidBy == "":
		return nil, invalidArgument("paid_by required")
	case !validAmount(tx.Amount) || tx.Amount < 0:
		return nil, invalidArgument("amount must be a non-negative number")
	}
	tx.ID = ""
	tx.CreatedAt = 0
	tx.Currency = strings.ToUpper(tx.Currency)

	slog.Debug("Adding transaction",
		"trip_id", tx.TripID,
		"amount", tx.Amount,
		"currency", tx.Currency,
		"paid_by", tx.PaidBy,
		"split_between", tx.SplitBetween,
	)

	if err := s.store.CreateTransaction(ctx, &tx); err != nil {
		return nil, storeError("AddTransaction", err)
	}
	return connect.NewResponse(&AddTransactionResponse{TransactionID: tx.ID}), nil
}

// ListTransactions returns a trip's expenses, oldest first.
func (s *TripService) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	if req.Msg.TripID == "" {
		return nil, invalidArgument("trip_id required")
	}

	txs, err := s.store.ListTransactions(ctx, req.Msg.TripID)
	if err != nil {
		return nil, storeError("ListTransactions", err)
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return connect.NewResponse(&ListTransactionsResponse{Transactions: txs}), nil
}

// DeleteTransaction removes an expense.
func (s *TripService) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	if req.Msg.TransactionID == "" {
		return nil, invalidArgument("transaction_id required")
	}

	if err := s.store.DeleteTransaction(ctx, req.Msg.TransactionID); err != nil {
		return nil, storeError("DeleteTransaction", err)
	}
	return connect.NewResponse(&DeleteTransactionResponse{}), nil
}

// AddMedia records an uploaded photo or video.
func (s *TripService) AddMedia(ctx context.Context, req *connect.Request[AddMediaRequest]) (*connect.Response[AddMediaResponse], error) {
	m := req.Msg.Media
	switch {
	case m.TripID == "":
		return nil, invalidArgument("trip_id required")
	case strings.TrimSpace(m.StoragePath) == "":
		return nil, invalidArgument("storage_path required")
	case (m.Lat == nil) != (m.Lng == nil):
		return nil, invalidArgument("lat and lng must be set together")
	case m.Rating < 0 || m.Rating > 5:
		return nil, invalidArgument("rating must be between 0 and 5, got %d", m.Rating)
	}
	if m.Timestamp != "" {
		if _, ok := journal.ParseTimestamp(m.Timestamp, time.UTC); !ok {
			return nil, invalidArgument("timestamp %q is not ISO-8601", m.Timestamp)
		}
	}
	m.ID = ""

	if err := s.store.CreateMedia(ctx, &m); err != nil {
		return nil, storeError("AddMedia", err)
	}
	return connect.NewResponse(&AddMediaResponse{MediaID: m.ID}), nil
}

// ListMedia returns a trip's media ordered by capture time.
func (s *TripService) ListMedia(ctx context.Context, req *connect.Request[ListMediaRequest]) (*connect.Response[ListMediaResponse], error) {
	if req.Msg.TripID == "" {
		return nil, invalidArgument("trip_id required")
	}

	media, err := s.store.ListMedia(ctx, req.Msg.TripID)
	if err != nil {
		return nil, storeError("ListMedia", err)
	}
	if media == nil {
		media = []models.Media{}
	}
	return connect.NewResponse(&ListMediaResponse{Media: media}), nil
}

// RecordPayment marks a settlement as paid.
func (s *TripService) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	p := req.Msg.Payment
	switch {
	case p.TripID == "":
		return nil, invalidArgument("trip_id required")
	case p.FromUserID == "" || p.ToUserID == "":
		return nil, invalidArgument("from_user_id and to_user_id required")
	case p.FromUserID == p.ToUserID:
		return nil, invalidArgument("cannot record a payment to yourself")
	case !validAmount(p.Amount) || p.Amount <= 0:
		return nil, invalidArgument("amount must be positive")
	}
	p.ID = ""
	p.CreatedAt = 0

	if err := s.store.CreatePayment(ctx, &p); err != nil {
		return nil, storeError("RecordPayment", err)
	}
	slog.Info("Payment recorded", "trip_id", p.TripID, "from", p.FromUserID, "to", p.ToUserID, "amount", p.Amount)

	return connect.NewResponse(&RecordPaymentResponse{PaymentID: p.ID}), nil
}

// SaveLocation stores a user's named place.
func (s *TripService) SaveLocation(ctx context.Context, req *connect.Request[SaveLocationRequest]) (*connect.Response[SaveLocationResponse], error) {
	loc := req.Msg.Location
	loc.Name = strings.TrimSpace(loc.Name)
	if loc.UserID == "" {
		loc.UserID = middleware.GetUserID(ctx)
	}
	switch {
	case loc.UserID == "":
		return nil, invalidArgument("user_id required")
	case loc.Name == "":
		return nil, invalidArgument("name required")
	case loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180:
		return nil, invalidArgument("coordinates out of range")
	}
	loc.ID = ""

	if err := s.store.SaveLocation(ctx, &loc); err != nil {
		return nil, storeError("SaveLocation", err)
	}
	return connect.NewResponse(&SaveLocationResponse{LocationID: loc.ID}), nil
}

// tripData is everything the derived views read.
type tripData struct {
	trip         *models.Trip
	transactions []models.Transaction
	media        []models.Media
	payments     []models.Payment
}

func (s *TripService) loadTrip(ctx context.Context, op, tripID string) (*tripData, error) {
	if tripID == "" {
		return nil, invalidArgument("trip_id required")
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, storeError(op, err)
	}
	txs, err := s.store.ListTransactions(ctx, tripID)
	if err != nil {
		return nil, storeError(op, err)
	}
	media, err := s.store.ListMedia(ctx, tripID)
	if err != nil {
		return nil, storeError(op, err)
	}
	payments, err := s.store.ListPayments(ctx, tripID)
	if err != nil {
		return nil, storeError(op, err)
	}

	return &tripData{trip: trip, transactions: txs, media: media, payments: payments}, nil
}

// GetBalances computes who owes whom after recorded payments, plus totals.
func (s *TripService) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	data, err := s.loadTrip(ctx, "GetBalances", req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	ledger := calculator.NewLedger(data.trip.Currency())
	balances := ledger.GroupBalances(data.transactions, data.payments)
	total := ledger.TotalExpense(data.transactions)

	slog.Debug("Balances computed",
		"trip_id", data.trip.ID,
		"transactions", len(data.transactions),
		"payments", len(data.payments),
		"settlements", len(balances.Settlements),
	)

	return connect.NewResponse(&GetBalancesResponse{
		BaseCurrency:      ledger.BaseCurrency,
		Balances:          balances.Balances,
		Settlements:       balances.Settlements,
		TotalExpense:      total,
		ExpenseByCategory: ledger.ExpenseByCategory(data.transactions),
		Budget:            calculator.Budget(total, data.trip.BudgetPerPax, len(data.trip.Members)),
	}), nil
}

// GetJournal builds the per-day journal and names each day's POIs.
// Names found for POIs without a cached name are written back to their media.
func (s *TripService) GetJournal(ctx context.Context, req *connect.Request[GetJournalRequest]) (*connect.Response[GetJournalResponse], error) {
	data, err := s.loadTrip(ctx, "GetJournal", req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	userID := req.Msg.UserID
	if userID == "" {
		userID = middleware.GetUserID(ctx)
	}

	var saved []models.SavedLocation
	if userID != "" {
		saved, err = s.store.ListSavedLocations(ctx, userID)
		if err != nil {
			return nil, storeError("GetJournal", err)
		}
	}

	days := journal.Build(data.trip, data.media, data.transactions, journal.Options{
		Location:     s.opts.Location,
		RadiusMeters: s.opts.POIRadiusMeters,
		Rand:         s.opts.Rand,
	})

	for i := range days {
		for j := range days[i].POIs {
			s.namePOI(ctx, &days[i].POIs[j], saved)
		}
	}

	return connect.NewResponse(&GetJournalResponse{
		Days:       days,
		DistanceKm: journal.TripDistanceKm(data.media, s.opts.Location),
	}), nil
}

// namePOI resolves poi's name and caches it on members that lack one.
func (s *TripService) namePOI(ctx context.Context, poi *journal.POICluster, saved []models.SavedLocation) {
	if poi.LocationName != "" {
		return
	}

	place := s.resolver.Resolve(ctx, poi.Center, poi.Media, saved)
	poi.LocationName = place.Name
	poi.PlaceType = place.PlaceType
	if place.Name == places.FallbackName {
		return
	}

	for k := range poi.Media {
		m := &poi.Media[k]
		if err := s.store.UpdateMediaLocation(ctx, m.ID, place.Name, place.PlaceID); err != nil {
			slog.Warn("Failed to cache location name", "media_id", m.ID, "error", err)
			continue
		}
		m.LocationName = place.Name
		if place.PlaceID != "" {
			m.GooglePlaceID = place.PlaceID
		}
	}
}

// GetRecap builds the end-of-trip recap.
func (s *TripService) GetRecap(ctx context.Context, req *connect.Request[GetRecapRequest]) (*connect.Response[GetRecapResponse], error) {
	data, err := s.loadTrip(ctx, "GetRecap", req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	r := recap.Build(data.trip, data.media, data.transactions, strings.ToUpper(req.Msg.BaseCurrency), recap.Options{
		Location:         s.opts.Location,
		HighlightsPerDay: s.opts.HighlightsPerDay,
	})
	if len(req.Msg.ExcludedMediaIDs) > 0 {
		excluded := make(map[string]bool, len(req.Msg.ExcludedMediaIDs))
		for _, id := range req.Msg.ExcludedMediaIDs {
			excluded[id] = true
		}
		r = recap.FilterExcluded(r, excluded)
	}

	return connect.NewResponse(&GetRecapResponse{
		Recap:    r,
		Timeline: recap.VideoTimeline(r),
	}), nil
}
