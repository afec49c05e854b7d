package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mmynk/tripsheet/internal/ledger"
	"github.com/mmynk/tripsheet/internal/models"
	"github.com/mmynk/tripsheet/internal/snapshot"
	"github.com/mmynk/tripsheet/internal/sources"
	"github.com/mmynk/tripsheet/internal/storage"
)

// LedgerService serves one live ledger over Connect.
// Calls are handled one at a time, each to completion.
type LedgerService struct {
	mu      sync.Mutex
	state   *ledger.State
	store   storage.Store
	roster  []string
	banking sources.BankingDetails
}

// NewLedgerService creates a LedgerService around state, archiving sheets in store.
func NewLedgerService(state *ledger.State, store storage.Store) *LedgerService {
	return &LedgerService{state: state, store: store}
}

// toConnectError maps ledger, snapshot and storage errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, storage.ErrSheetNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, snapshot.ErrMalformedSnapshot), errors.Is(err, ledger.ErrBlankName):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// mutate runs fn under the lock and returns the recomputed view.
func (s *LedgerService) mutate(op string, fn func(*ledger.State) error) (*connect.Response[LedgerView], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.state); err != nil {
		slog.Error(op+" failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(buildView(s.state)), nil
}

// GetLedger returns the current ledger.
func (s *LedgerService) GetLedger(ctx context.Context, req *connect.Request[GetLedgerRequest]) (*connect.Response[LedgerView], error) {
	return s.mutate("GetLedger", func(*ledger.State) error { return nil })
}

// AddParticipant appends a blank row.
func (s *LedgerService) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[LedgerView], error) {
	return s.mutate("AddParticipant", func(st *ledger.State) error {
		st.AddParticipant()
		return nil
	})
}

// RemoveLastParticipant drops the final row.
func (s *LedgerService) RemoveLastParticipant(ctx context.Context, req *connect.Request[RemoveLastParticipantRequest]) (*connect.Response[LedgerView], error) {
	return s.mutate("RemoveLastParticipant", func(st *ledger.State) error {
		st.RemoveLastParticipant()
		return nil
	})
}

// UpdateParticipant edits a row's name, bold flag and notes.
func (s *LedgerService) UpdateParticipant(ctx context.Context, req *connect.Request[UpdateParticipantRequest]) (*connect.Response[LedgerView], error) {
	m := req.Msg
	return s.mutate("UpdateParticipant", func(st *ledger.State) error {
		return st.UpdateParticipant(m.Index, m.Name, m.Bold, m.Notes)
	})
}

// SetTrip replaces the sheet header.
func (s *LedgerService) SetTrip(ctx context.Context, req *connect.Request[SetTripRequest]) (*connect.Response[LedgerView], error) {
	m := req.Msg
	return s.mutate("SetTrip", func(st *ledger.State) error {
		st.Trip = models.Trip{Date: m.Date, Location: m.Location, Leader: m.Leader, Clerk: m.Clerk}
		return nil
	})
}

// AddCustomExpense appends a user-named expense.
func (s *LedgerService) AddCustomExpense(ctx context.Context, req *connect.Request[AddCustomExpenseRequest]) (*connect.Response[LedgerView], error) {
	return s.mutate("AddCustomExpense", func(st *ledger.State) error {
		_, err := st.AddCustomExpense(req.Msg.Name)
		return err
	})
}

// RemoveCustomExpense removes a custom expense by case-insensitive name.
func (s *LedgerService) RemoveCustomExpense(ctx context.Context, req *connect.Request[RemoveCustomExpenseRequest]) (*connect.Response[LedgerView], error) {
	return s.mutate("RemoveCustomExpense", func(st *ledger.State) error {
		return st.RemoveCustomExpense(req.Msg.Name)
	})
}

// SetExpenseEnabled enables or disables a base expense.
func (s *LedgerService) SetExpenseEnabled(ctx context.Context, req *connect.Request[SetExpenseEnabledRequest]) (*connect.Response[LedgerView], error) {
	return s.mutate("SetExpenseEnabled", func(st *ledger.State) error {
		return st.SetExpenseEnabled(req.Msg.Key, req.Msg.Enabled)
	})
}

// SetBaseRate sets a direct-charge rate from typed text.
// Text that is not a finite number is ignored.
func (s *LedgerService) SetBaseRate(ctx context.Context, req *connect.Request[SetBaseRateRequest]) (*connect.Response[LedgerView], error) {
	return s.mutate("SetBaseRate", func(st *ledger.State) error {
		rate, ok := models.ParseAmount(req.Msg.Rate)
		if !ok {
			slog.Debug("Ignoring unparsable rate", "key", req.Msg.Key, "rate", req.Msg.Rate)
			if _, known := st.Rates()[req.Msg.Key]; !known {
				return fmt.Errorf("rate %q: %w", req.Msg.Key, ledger.ErrNotFound)
			}
			return nil
		}
		return st.SetBaseRate(req.Msg.Key, rate)
	})
}

// EditAmount sets an amount cell from typed text.
// Text that is not a finite number is ignored.
func (s *LedgerService) EditAmount(ctx context.Context, req *connect.Request[EditAmountRequest]) (*connect.Response[LedgerView], error) {
	m := req.Msg
	return s.mutate("EditAmount", func(st *ledger.State) error {
		amount, ok := models.ParseAmount(m.Amount)
		if !ok {
			slog.Debug("Ignoring unparsable amount", "expense_id", m.ExpenseID, "index", m.Index, "amount", m.Amount)
			_, err := st.Cell(m.ExpenseID, m.Index)
			return err
		}
		return st.EditAmount(m.ExpenseID, m.Index, amount)
	})
}

// EditConsumer sets whether a row shares in an expense.
func (s *LedgerService) EditConsumer(ctx context.Context, req *connect.Request[EditConsumerRequest]) (*connect.Response[LedgerView], error) {
	m := req.Msg
	return s.mutate("EditConsumer", func(st *ledger.State) error {
		return st.EditConsumer(m.ExpenseID, m.Index, m.Consumer)
	})
}

// SetSharedGearAll sets the shared-gear flag on every row.
func (s *LedgerService) SetSharedGearAll(ctx context.Context, req *connect.Request[SetSharedGearAllRequest]) (*connect.Response[LedgerView], error) {
	return s.mutate("SetSharedGearAll", func(st *ledger.State) error {
		st.SetSharedGearAll(req.Msg.Selected)
		return nil
	})
}

// ExportSnapshot returns the full persisted form of the ledger.
func (s *LedgerService) ExportSnapshot(ctx context.Context, req *connect.Request[ExportSnapshotRequest]) (*connect.Response[structpb.Struct], error) {
	s.mu.Lock()
	data, err := snapshot.Export(s.state)
	s.mu.Unlock()
	if err != nil {
		slog.Error("ExportSnapshot failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		slog.Error("ExportSnapshot conversion failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

// ImportSnapshot replaces the ledger with the supplied snapshot.
func (s *LedgerService) ImportSnapshot(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[LedgerView], error) {
	data, err := protojson.Marshal(req.Msg)
	if err != nil {
		slog.Error("ImportSnapshot conversion failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return s.mutate("ImportSnapshot", func(st *ledger.State) error {
		return snapshot.Import(st, data)
	})
}

// GetRoster returns the member names loaded at startup.
func (s *LedgerService) GetRoster(ctx context.Context, req *connect.Request[GetRosterRequest]) (*connect.Response[RosterResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return connect.NewResponse(&RosterResponse{Names: append([]string{}, s.roster...)}), nil
}

// GetBankingDetails returns the payment details with the current trip tag.
func (s *LedgerService) GetBankingDetails(ctx context.Context, req *connect.Request[GetBankingDetailsRequest]) (*connect.Response[BankingDetailsResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := &BankingDetailsResponse{}
	for _, l := range sources.BankingLines(s.banking, snapshot.Tag(s.state.Trip)) {
		resp.Lines = append(resp.Lines, BankingLine{Label: l.Label, Value: l.Value})
	}
	return connect.NewResponse(resp), nil
}

func sheetView(sh *models.Sheet) SheetView {
	return SheetView{ID: sh.ID, Tag: sh.Tag, Title: sh.Title, CreatedAt: sh.CreatedAt}
}

// SaveSheet archives the current export under the trip tag.
func (s *LedgerService) SaveSheet(ctx context.Context, req *connect.Request[SaveSheetRequest]) (*connect.Response[SaveSheetResponse], error) {
	s.mu.Lock()
	data, err := snapshot.Export(s.state)
	tag := snapshot.Tag(s.state.Trip)
	s.mu.Unlock()
	if err != nil {
		slog.Error("Failed to export sheet", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	sheet := &models.Sheet{Tag: tag, Title: req.Msg.Title, Snapshot: data}
	if err := s.store.SaveSheet(ctx, sheet); err != nil {
		slog.Error("Failed to save sheet", "tag", tag, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Sheet saved", "sheet_id", sheet.ID, "tag", tag)
	return connect.NewResponse(&SaveSheetResponse{Sheet: sheetView(sheet)}), nil
}

// ListSheets returns the archived sheets, newest first.
func (s *LedgerService) ListSheets(ctx context.Context, req *connect.Request[ListSheetsRequest]) (*connect.Response[ListSheetsResponse], error) {
	sheets, err := s.store.ListSheets(ctx)
	if err != nil {
		slog.Error("Failed to list sheets", "error", err)
		return nil, toConnectError(err)
	}

	resp := &ListSheetsResponse{Sheets: make([]SheetView, 0, len(sheets))}
	for _, sh := range sheets {
		resp.Sheets = append(resp.Sheets, sheetView(sh))
	}
	return connect.NewResponse(resp), nil
}

// LoadSheet replaces the live ledger with an archived sheet.
func (s *LedgerService) LoadSheet(ctx context.Context, req *connect.Request[LoadSheetRequest]) (*connect.Response[LedgerView], error) {
	sheet, err := s.store.GetSheet(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("Failed to get sheet", "sheet_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return s.mutate("LoadSheet", func(st *ledger.State) error {
		return snapshot.Import(st, sheet.Snapshot)
	})
}

// DeleteSheet removes an archived sheet.
func (s *LedgerService) DeleteSheet(ctx context.Context, req *connect.Request[DeleteSheetRequest]) (*connect.Response[DeleteSheetResponse], error) {
	if err := s.store.DeleteSheet(ctx, req.Msg.ID); err != nil {
		slog.Error("Failed to delete sheet", "sheet_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Sheet deleted", "sheet_id", req.Msg.ID)
	return connect.NewResponse(&DeleteSheetResponse{}), nil
}

// ClubSources names where the club's read-only data lives.
type ClubSources struct {
	Roster    string
	Banking   string
	Signature string
}

// LoadClubData fetches the roster, banking details and clerk signature
// concurrently. Each source is optional: a failure is logged and the
// ledger keeps working without it. The signature only fills an empty clerk.
func (s *LedgerService) LoadClubData(ctx context.Context, loader *sources.Loader, src ClubSources) {
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		names, err := loader.LoadRoster(ctx, src.Roster)
		if err != nil {
			slog.Warn("Roster unavailable", "source", src.Roster, "error", err)
			return
		}
		s.mu.Lock()
		s.roster = names
		s.mu.Unlock()
		slog.Info("Roster loaded", "members", len(names))
	}()
	go func() {
		defer wg.Done()
		details, err := loader.LoadBanking(ctx, src.Banking)
		if err != nil {
			slog.Warn("Banking details unavailable", "source", src.Banking, "error", err)
			return
		}
		s.mu.Lock()
		s.banking = details
		s.mu.Unlock()
		slog.Info("Banking details loaded")
	}()
	go func() {
		defer wg.Done()
		clerk, err := loader.LoadClerk(ctx, src.Signature)
		if err != nil {
			slog.Warn("Clerk signature unavailable", "source", src.Signature, "error", err)
			return
		}
		s.mu.Lock()
		if s.state.Trip.Clerk == "" {
			s.state.Trip.Clerk = clerk
		}
		s.mu.Unlock()
	}()

	wg.Wait()
}
