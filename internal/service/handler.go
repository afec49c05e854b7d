package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
)

// LedgerServiceName is the fully-qualified name of the ledger service.
const LedgerServiceName = "tripsheet.v1.LedgerService"

// Procedure paths, one per RPC.
const (
	GetLedgerProcedure             = "/" + LedgerServiceName + "/GetLedger"
	AddParticipantProcedure        = "/" + LedgerServiceName + "/AddParticipant"
	RemoveLastParticipantProcedure = "/" + LedgerServiceName + "/RemoveLastParticipant"
	UpdateParticipantProcedure     = "/" + LedgerServiceName + "/UpdateParticipant"
	SetTripProcedure               = "/" + LedgerServiceName + "/SetTrip"
	AddCustomExpenseProcedure      = "/" + LedgerServiceName + "/AddCustomExpense"
	RemoveCustomExpenseProcedure   = "/" + LedgerServiceName + "/RemoveCustomExpense"
	SetExpenseEnabledProcedure     = "/" + LedgerServiceName + "/SetExpenseEnabled"
	SetBaseRateProcedure           = "/" + LedgerServiceName + "/SetBaseRate"
	EditAmountProcedure            = "/" + LedgerServiceName + "/EditAmount"
	EditConsumerProcedure          = "/" + LedgerServiceName + "/EditConsumer"
	SetSharedGearAllProcedure      = "/" + LedgerServiceName + "/SetSharedGearAll"
	ExportSnapshotProcedure        = "/" + LedgerServiceName + "/ExportSnapshot"
	ImportSnapshotProcedure        = "/" + LedgerServiceName + "/ImportSnapshot"
	GetRosterProcedure             = "/" + LedgerServiceName + "/GetRoster"
	GetBankingDetailsProcedure     = "/" + LedgerServiceName + "/GetBankingDetails"
	SaveSheetProcedure             = "/" + LedgerServiceName + "/SaveSheet"
	ListSheetsProcedure            = "/" + LedgerServiceName + "/ListSheets"
	LoadSheetProcedure             = "/" + LedgerServiceName + "/LoadSheet"
	DeleteSheetProcedure           = "/" + LedgerServiceName + "/DeleteSheet"
)

// NewLedgerServiceHandler builds an HTTP handler for every ledger RPC.
// It returns the path prefix to mount the handler on.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	handlers := map[string]http.Handler{
		GetLedgerProcedure:             connect.NewUnaryHandler(GetLedgerProcedure, svc.GetLedger, opts...),
		AddParticipantProcedure:        connect.NewUnaryHandler(AddParticipantProcedure, svc.AddParticipant, opts...),
		RemoveLastParticipantProcedure: connect.NewUnaryHandler(RemoveLastParticipantProcedure, svc.RemoveLastParticipant, opts...),
		UpdateParticipantProcedure:     connect.NewUnaryHandler(UpdateParticipantProcedure, svc.UpdateParticipant, opts...),
		SetTripProcedure:               connect.NewUnaryHandler(SetTripProcedure, svc.SetTrip, opts...),
		AddCustomExpenseProcedure:      connect.NewUnaryHandler(AddCustomExpenseProcedure, svc.AddCustomExpense, opts...),
		RemoveCustomExpenseProcedure:   connect.NewUnaryHandler(RemoveCustomExpenseProcedure, svc.RemoveCustomExpense, opts...),
		SetExpenseEnabledProcedure:     connect.NewUnaryHandler(SetExpenseEnabledProcedure, svc.SetExpenseEnabled, opts...),
		SetBaseRateProcedure:           connect.NewUnaryHandler(SetBaseRateProcedure, svc.SetBaseRate, opts...),
		EditAmountProcedure:            connect.NewUnaryHandler(EditAmountProcedure, svc.EditAmount, opts...),
		EditConsumerProcedure:          connect.NewUnaryHandler(EditConsumerProcedure, svc.EditConsumer, opts...),
		SetSharedGearAllProcedure:      connect.NewUnaryHandler(SetSharedGearAllProcedure, svc.SetSharedGearAll, opts...),
		ExportSnapshotProcedure:        connect.NewUnaryHandler(ExportSnapshotProcedure, svc.ExportSnapshot, opts...),
		ImportSnapshotProcedure:        connect.NewUnaryHandler(ImportSnapshotProcedure, svc.ImportSnapshot, opts...),
		GetRosterProcedure:             connect.NewUnaryHandler(GetRosterProcedure, svc.GetRoster, opts...),
		GetBankingDetailsProcedure:     connect.NewUnaryHandler(GetBankingDetailsProcedure, svc.GetBankingDetails, opts...),
		SaveSheetProcedure:             connect.NewUnaryHandler(SaveSheetProcedure, svc.SaveSheet, opts...),
		ListSheetsProcedure:            connect.NewUnaryHandler(ListSheetsProcedure, svc.ListSheets, opts...),
		LoadSheetProcedure:             connect.NewUnaryHandler(LoadSheetProcedure, svc.LoadSheet, opts...),
		DeleteSheetProcedure:           connect.NewUnaryHandler(DeleteSheetProcedure, svc.DeleteSheet, opts...),
	}

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// LedgerServiceClient calls a ledger service over Connect with JSON payloads.
type LedgerServiceClient struct {
	getLedger             *connect.Client[GetLedgerRequest, LedgerView]
	addParticipant        *connect.Client[AddParticipantRequest, LedgerView]
	removeLastParticipant *connect.Client[RemoveLastParticipantRequest, LedgerView]
	updateParticipant     *connect.Client[UpdateParticipantRequest, LedgerView]
	setTrip               *connect.Client[SetTripRequest, LedgerView]
	addCustomExpense      *connect.Client[AddCustomExpenseRequest, LedgerView]
	removeCustomExpense   *connect.Client[RemoveCustomExpenseRequest, LedgerView]
	setExpenseEnabled     *connect.Client[SetExpenseEnabledRequest, LedgerView]
	setBaseRate           *connect.Client[SetBaseRateRequest, LedgerView]
	editAmount            *connect.Client[EditAmountRequest, LedgerView]
	editConsumer          *connect.Client[EditConsumerRequest, LedgerView]
	setSharedGearAll      *connect.Client[SetSharedGearAllRequest, LedgerView]
	exportSnapshot        *connect.Client[ExportSnapshotRequest, structpb.Struct]
	importSnapshot        *connect.Client[structpb.Struct, LedgerView]
	getRoster             *connect.Client[GetRosterRequest, RosterResponse]
	getBankingDetails     *connect.Client[GetBankingDetailsRequest, BankingDetailsResponse]
	saveSheet             *connect.Client[SaveSheetRequest, SaveSheetResponse]
	listSheets            *connect.Client[ListSheetsRequest, ListSheetsResponse]
	loadSheet             *connect.Client[LoadSheetRequest, LedgerView]
	deleteSheet           *connect.Client[DeleteSheetRequest, DeleteSheetResponse]
}

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, baseURL+procedure, opts...)
}

// NewLedgerServiceClient creates a client for the service at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &LedgerServiceClient{
		getLedger:             newClient[GetLedgerRequest, LedgerView](httpClient, baseURL, GetLedgerProcedure, opts),
		addParticipant:        newClient[AddParticipantRequest, LedgerView](httpClient, baseURL, AddParticipantProcedure, opts),
		removeLastParticipant: newClient[RemoveLastParticipantRequest, LedgerView](httpClient, baseURL, RemoveLastParticipantProcedure, opts),
		updateParticipant:     newClient[UpdateParticipantRequest, LedgerView](httpClient, baseURL, UpdateParticipantProcedure, opts),
		setTrip:               newClient[SetTripRequest, LedgerView](httpClient, baseURL, SetTripProcedure, opts),
		addCustomExpense:      newClient[AddCustomExpenseRequest, LedgerView](httpClient, baseURL, AddCustomExpenseProcedure, opts),
		removeCustomExpense:   newClient[RemoveCustomExpenseRequest, LedgerView](httpClient, baseURL, RemoveCustomExpenseProcedure, opts),
		setExpenseEnabled:     newClient[SetExpenseEnabledRequest, LedgerView](httpClient, baseURL, SetExpenseEnabledProcedure, opts),
		setBaseRate:           newClient[SetBaseRateRequest, LedgerView](httpClient, baseURL, SetBaseRateProcedure, opts),
		editAmount:            newClient[EditAmountRequest, LedgerView](httpClient, baseURL, EditAmountProcedure, opts),
		editConsumer:          newClient[EditConsumerRequest, LedgerView](httpClient, baseURL, EditConsumerProcedure, opts),
		setSharedGearAll:      newClient[SetSharedGearAllRequest, LedgerView](httpClient, baseURL, SetSharedGearAllProcedure, opts),
		exportSnapshot:        newClient[ExportSnapshotRequest, structpb.Struct](httpClient, baseURL, ExportSnapshotProcedure, opts),
		importSnapshot:        newClient[structpb.Struct, LedgerView](httpClient, baseURL, ImportSnapshotProcedure, opts),
		getRoster:             newClient[GetRosterRequest, RosterResponse](httpClient, baseURL, GetRosterProcedure, opts),
		getBankingDetails:     newClient[GetBankingDetailsRequest, BankingDetailsResponse](httpClient, baseURL, GetBankingDetailsProcedure, opts),
		saveSheet:             newClient[SaveSheetRequest, SaveSheetResponse](httpClient, baseURL, SaveSheetProcedure, opts),
		listSheets:            newClient[ListSheetsRequest, ListSheetsResponse](httpClient, baseURL, ListSheetsProcedure, opts),
		loadSheet:             newClient[LoadSheetRequest, LedgerView](httpClient, baseURL, LoadSheetProcedure, opts),
		deleteSheet:           newClient[DeleteSheetRequest, DeleteSheetResponse](httpClient, baseURL, DeleteSheetProcedure, opts),
	}
}

func (c *LedgerServiceClient) GetLedger(ctx context.Context, req *connect.Request[GetLedgerRequest]) (*connect.Response[LedgerView], error) {
	return c.getLedger.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[LedgerView], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RemoveLastParticipant(ctx context.Context, req *connect.Request[RemoveLastParticipantRequest]) (*connect.Response[LedgerView], error) {
	return c.removeLastParticipant.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) UpdateParticipant(ctx context.Context, req *connect.Request[UpdateParticipantRequest]) (*connect.Response[LedgerView], error) {
	return c.updateParticipant.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetTrip(ctx context.Context, req *connect.Request[SetTripRequest]) (*connect.Response[LedgerView], error) {
	return c.setTrip.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddCustomExpense(ctx context.Context, req *connect.Request[AddCustomExpenseRequest]) (*connect.Response[LedgerView], error) {
	return c.addCustomExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RemoveCustomExpense(ctx context.Context, req *connect.Request[RemoveCustomExpenseRequest]) (*connect.Response[LedgerView], error) {
	return c.removeCustomExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetExpenseEnabled(ctx context.Context, req *connect.Request[SetExpenseEnabledRequest]) (*connect.Response[LedgerView], error) {
	return c.setExpenseEnabled.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetBaseRate(ctx context.Context, req *connect.Request[SetBaseRateRequest]) (*connect.Response[LedgerView], error) {
	return c.setBaseRate.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) EditAmount(ctx context.Context, req *connect.Request[EditAmountRequest]) (*connect.Response[LedgerView], error) {
	return c.editAmount.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) EditConsumer(ctx context.Context, req *connect.Request[EditConsumerRequest]) (*connect.Response[LedgerView], error) {
	return c.editConsumer.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetSharedGearAll(ctx context.Context, req *connect.Request[SetSharedGearAllRequest]) (*connect.Response[LedgerView], error) {
	return c.setSharedGearAll.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ExportSnapshot(ctx context.Context, req *connect.Request[ExportSnapshotRequest]) (*connect.Response[structpb.Struct], error) {
	return c.exportSnapshot.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ImportSnapshot(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[LedgerView], error) {
	return c.importSnapshot.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetRoster(ctx context.Context, req *connect.Request[GetRosterRequest]) (*connect.Response[RosterResponse], error) {
	return c.getRoster.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetBankingDetails(ctx context.Context, req *connect.Request[GetBankingDetailsRequest]) (*connect.Response[BankingDetailsResponse], error) {
	return c.getBankingDetails.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SaveSheet(ctx context.Context, req *connect.Request[SaveSheetRequest]) (*connect.Response[SaveSheetResponse], error) {
	return c.saveSheet.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListSheets(ctx context.Context, req *connect.Request[ListSheetsRequest]) (*connect.Response[ListSheetsResponse], error) {
	return c.listSheets.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) LoadSheet(ctx context.Context, req *connect.Request[LoadSheetRequest]) (*connect.Response[LedgerView], error) {
	return c.loadSheet.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteSheet(ctx context.Context, req *connect.Request[DeleteSheetRequest]) (*connect.Response[DeleteSheetResponse], error) {
	return c.deleteSheet.CallUnary(ctx, req)
}
