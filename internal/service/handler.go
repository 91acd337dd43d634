package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// TripServiceName is the fully-qualified name of the TripService.
const TripServiceName = "tripwrap.v1.TripService"

// Procedure paths for TripService RPCs.
const (
	CreateTripProcedure        = "/" + TripServiceName + "/CreateTrip"
	GetTripProcedure           = "/" + TripServiceName + "/GetTrip"
	AddTransactionProcedure    = "/" + TripServiceName + "/AddTransaction"
	ListTransactionsProcedure  = "/" + TripServiceName + "/ListTransactions"
	DeleteTransactionProcedure = "/" + TripServiceName + "/DeleteTransaction"
	AddMediaProcedure          = "/" + TripServiceName + "/AddMedia"
	ListMediaProcedure         = "/" + TripServiceName + "/ListMedia"
	RecordPaymentProcedure     = "/" + TripServiceName + "/RecordPayment"
	SaveLocationProcedure      = "/" + TripServiceName + "/SaveLocation"
	GetBalancesProcedure       = "/" + TripServiceName + "/GetBalances"
	GetJournalProcedure        = "/" + TripServiceName + "/GetJournal"
	GetRecapProcedure          = "/" + TripServiceName + "/GetRecap"
)

func route[Req, Res any](mux *http.ServeMux, procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error), opts []connect.HandlerOption) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

// NewTripServiceHandler builds an HTTP handler for every TripService
// procedure. It returns the path to mount the handler on.
func NewTripServiceHandler(svc *TripService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	route(mux, CreateTripProcedure, svc.CreateTrip, opts)
	route(mux, GetTripProcedure, svc.GetTrip, opts)
	route(mux, AddTransactionProcedure, svc.AddTransaction, opts)
	route(mux, ListTransactionsProcedure, svc.ListTransactions, opts)
	route(mux, DeleteTransactionProcedure, svc.DeleteTransaction, opts)
	route(mux, AddMediaProcedure, svc.AddMedia, opts)
	route(mux, ListMediaProcedure, svc.ListMedia, opts)
	route(mux, RecordPaymentProcedure, svc.RecordPayment, opts)
	route(mux, SaveLocationProcedure, svc.SaveLocation, opts)
	route(mux, GetBalancesProcedure, svc.GetBalances, opts)
	route(mux, GetJournalProcedure, svc.GetJournal, opts)
	route(mux, GetRecapProcedure, svc.GetRecap, opts)

	return "/" + TripServiceName + "/", mux
}

// TripServiceClient calls TripService over Connect with the JSON codec.
type TripServiceClient struct {
	createTrip        *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip           *connect.Client[GetTripRequest, GetTripResponse]
	addTransaction    *connect.Client[AddTransactionRequest, AddTransactionResponse]
	listTransactions  *connect.Client[ListTransactionsRequest, ListTransactionsResponse]
	deleteTransaction *connect.Client[DeleteTransactionRequest, DeleteTransactionResponse]
	addMedia          *connect.Client[AddMediaRequest, AddMediaResponse]
	listMedia         *connect.Client[ListMediaRequest, ListMediaResponse]
	recordPayment     *connect.Client[RecordPaymentRequest, RecordPaymentResponse]
	saveLocation      *connect.Client[SaveLocationRequest, SaveLocationResponse]
	getBalances       *connect.Client[GetBalancesRequest, GetBalancesResponse]
	getJournal        *connect.Client[GetJournalRequest, GetJournalResponse]
	getRecap          *connect.Client[GetRecapRequest, GetRecapResponse]
}

// NewTripServiceClient constructs a client for the TripService at baseURL.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TripServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &TripServiceClient{
		createTrip:        connect.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL+CreateTripProcedure, opts...),
		getTrip:           connect.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL+GetTripProcedure, opts...),
		addTransaction:    connect.NewClient[AddTransactionRequest, AddTransactionResponse](httpClient, baseURL+AddTransactionProcedure, opts...),
		listTransactions:  connect.NewClient[ListTransactionsRequest, ListTransactionsResponse](httpClient, baseURL+ListTransactionsProcedure, opts...),
		deleteTransaction: connect.NewClient[DeleteTransactionRequest, DeleteTransactionResponse](httpClient, baseURL+DeleteTransactionProcedure, opts...),
		addMedia:          connect.NewClient[AddMediaRequest, AddMediaResponse](httpClient, baseURL+AddMediaProcedure, opts...),
		listMedia:         connect.NewClient[ListMediaRequest, ListMediaResponse](httpClient, baseURL+ListMediaProcedure, opts...),
		recordPayment:     connect.NewClient[RecordPaymentRequest, RecordPaymentResponse](httpClient, baseURL+RecordPaymentProcedure, opts...),
		saveLocation:      connect.NewClient[SaveLocationRequest, SaveLocationResponse](httpClient, baseURL+SaveLocationProcedure, opts...),
		getBalances:       connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+GetBalancesProcedure, opts...),
		getJournal:        connect.NewClient[GetJournalRequest, GetJournalResponse](httpClient, baseURL+GetJournalProcedure, opts...),
		getRecap:          connect.NewClient[GetRecapRequest, GetRecapResponse](httpClient, baseURL+GetRecapProcedure, opts...),
	}
}

func (c *TripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[AddTransactionResponse], error) {
	return c.addTransaction.CallUnary(ctx, req)
}

func (c *TripServiceClient) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *TripServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

func (c *TripServiceClient) AddMedia(ctx context.Context, req *connect.Request[AddMediaRequest]) (*connect.Response[AddMediaResponse], error) {
	return c.addMedia.CallUnary(ctx, req)
}

func (c *TripServiceClient) ListMedia(ctx context.Context, req *connect.Request[ListMediaRequest]) (*connect.Response[ListMediaResponse], error) {
	return c.listMedia.CallUnary(ctx, req)
}

func (c *TripServiceClient) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *TripServiceClient) SaveLocation(ctx context.Context, req *connect.Request[SaveLocationRequest]) (*connect.Response[SaveLocationResponse], error) {
	return c.saveLocation.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetJournal(ctx context.Context, req *connect.Request[GetJournalRequest]) (*connect.Response[GetJournalResponse], error) {
	return c.getJournal.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetRecap(ctx context.Context, req *connect.Request[GetRecapRequest]) (*connect.Response[GetRecapResponse], error) {
	return c.getRecap.CallUnary(ctx, req)
}
