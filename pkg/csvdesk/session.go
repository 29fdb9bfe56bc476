package csvdesk

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/chart"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

// Session owns the single live dataset. It remembers the file the dataset
// came from and whether it has changed since the last load or save.
type Session struct {
	opts    Options
	adapter *chart.Adapter
	logger  *log.Logger

	ds    *models.Dataset
	path  string
	dirty bool
}

// NewSession creates a session with no dataset loaded. A nil adapter uses
// the default column names; a nil logger discards output.
func NewSession(opts Options, adapter *chart.Adapter, logger *log.Logger) *Session {
	if adapter == nil {
		adapter = chart.New(chart.DefaultOptions())
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		opts:    opts,
		adapter: adapter,
		logger:  logger,
	}
}

// Load replaces the live dataset with the contents of path. On failure the
// previous dataset stays live.
func (s *Session) Load(path string) error {
	ds, err := Load(path, s.opts)
	if err != nil {
		s.logger.Warn("load failed", "path", path, "err", err)
		return err
	}
	s.ds = ds
	s.path = path
	s.dirty = false
	s.logger.Info("loaded dataset", "path", path, "columns", ds.NumColumns(), "rows", ds.NumRows())
	return nil
}

// Save writes the live dataset to path. An empty path writes back to the
// file the dataset was loaded from.
func (s *Session) Save(path string) error {
	ds, err := s.Dataset()
	if err != nil {
		return err
	}
	if path == "" {
		path = s.path
	}
	if err := Save(ds, path, s.opts); err != nil {
		s.logger.Warn("save failed", "path", path, "err", err)
		return err
	}
	s.path = path
	s.dirty = false
	s.logger.Info("saved dataset", "path", path)
	return nil
}

// Dataset returns the live dataset, or ErrNoData before the first load.
func (s *Session) Dataset() (*models.Dataset, error) {
	if s.ds == nil {
		return nil, ErrNoData
	}
	return s.ds, nil
}

// Path returns the file the live dataset was loaded from or last saved to.
func (s *Session) Path() string {
	return s.path
}

// Dirty reports whether the dataset changed since it was loaded or saved.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Adapter returns the chart adapter used by the session.
func (s *Session) Adapter() *chart.Adapter {
	return s.adapter
}

// AddRow appends values as a new row. See [AddRow].
func (s *Session) AddRow(values []string) error {
	return s.mutate("add row", func(ds *models.Dataset) error {
		return AddRow(ds, values)
	}, "values", len(values))
}

// AddRowText splits comma-separated text into values and adds them as a row.
// Empty text is rejected with ErrEmptyRow.
func (s *Session) AddRowText(text string) error {
	if text == "" {
		return s.mutate("add row", func(*models.Dataset) error {
			return ErrEmptyRow
		}, "values", 0)
	}
	return s.AddRow(SplitValues(text))
}

// AddColumn appends a column named name holding def in every row.
func (s *Session) AddColumn(name, def string) error {
	return s.mutate("add column", func(ds *models.Dataset) error {
		return AddColumn(ds, name, def)
	}, "column", name)
}

// EditCell sets the cell at a 0-based row in the named column.
func (s *Session) EditCell(row int, column, value string) error {
	return s.mutate("edit cell", func(ds *models.Dataset) error {
		return EditCell(ds, row, column, value)
	}, "row", row, "column", column)
}

// Columns describes the live dataset's columns.
func (s *Session) Columns() ([]models.ColumnInfo, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return s.adapter.Columns(ds), nil
}

// PrepareHeatmap pivots the live dataset for the heatmap.
func (s *Session) PrepareHeatmap() (models.Heatmap, error) {
	ds, err := s.Dataset()
	if err != nil {
		return models.Heatmap{}, err
	}
	return s.adapter.Heatmap(ds)
}

// PrepareLineSeries selects the nth numeric column, counting from 0.
func (s *Session) PrepareLineSeries(n int) (models.LineSeries, error) {
	ds, err := s.Dataset()
	if err != nil {
		return models.LineSeries{}, err
	}
	return s.adapter.LineSeries(ds, n)
}

// PreparePie counts the grades of the live dataset.
func (s *Session) PreparePie() (models.PieChart, error) {
	ds, err := s.Dataset()
	if err != nil {
		return models.PieChart{}, err
	}
	return s.adapter.Pie(ds)
}

// PrepareBar collects every numeric column for the bar chart.
func (s *Session) PrepareBar() (models.BarChart, error) {
	ds, err := s.Dataset()
	if err != nil {
		return models.BarChart{}, err
	}
	return s.adapter.Bar(ds)
}

// Describe summarizes the numeric columns of the live dataset.
func (s *Session) Describe() ([]models.ColumnSummary, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return chart.Describe(ds)
}

// mutate applies fn to the live dataset. Store mutations validate before
// they touch anything, so a failed fn leaves the dataset as it was.
func (s *Session) mutate(op string, fn func(*models.Dataset) error, keyvals ...any) error {
	ds, err := s.Dataset()
	if err != nil {
		return err
	}
	if err := fn(ds); err != nil {
		s.logger.Warn(op+" failed", append(keyvals, "err", err)...)
		return err
	}
	s.dirty = true
	s.logger.Debug(op, keyvals...)
	return nil
}
