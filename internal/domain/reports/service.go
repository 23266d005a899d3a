package reports

import "context"

const (
	DefaultTopLimit      = 10
	DefaultRiskThreshold = 60.0
)

type StoreAPI interface {
	PeriodName(ctx context.Context, periodID string) (string, error)
	PreviousPeriodID(ctx context.Context, periodID string) (string, error)
	TopPerformers(ctx context.Context, periodID string, limit int) ([]TopPerformer, error)
	HeatmapCells(ctx context.Context, periodID string) ([]HeatmapCell, error)
	UnitAverages(ctx context.Context, periodID string) ([]UnitAverage, error)
	UnitPeriodCells(ctx context.Context) ([]UnitPeriodCell, error)
	RiskList(ctx context.Context, periodID string, threshold float64) ([]RiskRow, error)
	UnitTrend(ctx context.Context, unit string) ([]TrendPoint, error)
	Units(ctx context.Context) ([]string, error)
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) TopPerformers(ctx context.Context, periodID string, limit int) ([]TopPerformer, error) {
	if _, err := s.store.PeriodName(ctx, periodID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	return s.store.TopPerformers(ctx, periodID, limit)
}

func (s *Service) Heatmap(ctx context.Context, periodID string) (Heatmap, error) {
	if _, err := s.store.PeriodName(ctx, periodID); err != nil {
		return Heatmap{}, err
	}
	cells, err := s.store.HeatmapCells(ctx, periodID)
	if err != nil {
		return Heatmap{}, err
	}
	return BuildHeatmap(cells), nil
}

func (s *Service) UnitComparison(ctx context.Context, periodID string) ([]UnitComparisonRow, error) {
	if _, err := s.store.PeriodName(ctx, periodID); err != nil {
		return nil, err
	}
	prevID, err := s.store.PreviousPeriodID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	current, err := s.store.UnitAverages(ctx, periodID)
	if err != nil {
		return nil, err
	}
	previous, err := s.store.UnitAverages(ctx, prevID)
	if err != nil {
		return nil, err
	}
	return CompareUnits(current, previous), nil
}

func (s *Service) UnitPeriodHeatmap(ctx context.Context) (UnitPeriodHeatmap, error) {
	cells, err := s.store.UnitPeriodCells(ctx)
	if err != nil {
		return UnitPeriodHeatmap{}, err
	}
	return BuildUnitPeriodHeatmap(cells), nil
}

func (s *Service) RiskList(ctx context.Context, periodID string, threshold float64) ([]RiskRow, error) {
	if _, err := s.store.PeriodName(ctx, periodID); err != nil {
		return nil, err
	}
	if threshold <= 0 {
		threshold = DefaultRiskThreshold
	}
	return s.store.RiskList(ctx, periodID, threshold)
}

func (s *Service) UnitTrend(ctx context.Context, unit string) ([]TrendPoint, error) {
	return s.store.UnitTrend(ctx, unit)
}

func (s *Service) Units(ctx context.Context) ([]string, error) {
	return s.store.Units(ctx)
}

// Summary gathers everything the PDF period summary needs in one call.
func (s *Service) Summary(ctx context.Context, periodID string) (SummaryData, error) {
	name, err := s.store.PeriodName(ctx, periodID)
	if err != nil {
		return SummaryData{}, err
	}
	units, err := s.store.UnitAverages(ctx, periodID)
	if err != nil {
		return SummaryData{}, err
	}
	top, err := s.store.TopPerformers(ctx, periodID, DefaultTopLimit)
	if err != nil {
		return SummaryData{}, err
	}
	risk, err := s.store.RiskList(ctx, periodID, DefaultRiskThreshold)
	if err != nil {
		return SummaryData{}, err
	}
	return SummaryData{PeriodName: name, Units: units, Top: top, Risk: risk}, nil
}
