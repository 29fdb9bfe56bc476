package render

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/chart"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

// LineCharts is how many numeric columns get a line chart.
const LineCharts = 2

// RenderAll prepares and draws every chart the dataset supports: the
// heatmap, one line chart per leading numeric column, the pie chart and the
// bar chart. A chart that cannot be prepared or drawn does not stop the
// others; every failure is returned together. Sinks that carry data get
// the dataset first. The sink is not closed.
func RenderAll(sink Sink, adapter *chart.Adapter, ds *models.Dataset) error {
	var merr *multierror.Error
	fail := func(what string, err error) {
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", what, err))
	}

	if dw, ok := sink.(DataWriter); ok {
		if err := dw.Data(ds); err != nil {
			fail("data", err)
		}
	}

	if h, err := adapter.Heatmap(ds); err != nil {
		fail("heatmap", err)
	} else if err := sink.Heatmap(h); err != nil {
		fail("heatmap", err)
	}

	for n := 0; n < LineCharts; n++ {
		what := fmt.Sprintf("line %d", n+1)
		if ls, err := adapter.LineSeries(ds, n); err != nil {
			fail(what, err)
		} else if err := sink.Line(ls); err != nil {
			fail(what, err)
		}
	}

	if p, err := adapter.Pie(ds); err != nil {
		fail("pie chart", err)
	} else if err := sink.Pie(p); err != nil {
		fail("pie chart", err)
	}

	if b, err := adapter.Bar(ds); err != nil {
		fail("bar chart", err)
	} else if err := sink.Bar(b); err != nil {
		fail("bar chart", err)
	}

	return merr.ErrorOrNil()
}
