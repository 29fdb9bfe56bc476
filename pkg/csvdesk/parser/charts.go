package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

// ChartTypeMap maps OOXML plot element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":     "Line",
	"line3DChart":   "3DLine",
	"barChart":      "Bar",
	"bar3DChart":    "3DBar",
	"areaChart":     "Area",
	"pieChart":      "Pie",
	"pie3DChart":    "3DPie",
	"doughnutChart": "Doughnut",
	"scatterChart":  "XYScatter",
	"radarChart":    "Radar",
}

type xlsxWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

type xlsxRelationships struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xlsxAnchor struct {
	Frame *struct {
		Props struct {
			Name string `xml:"name,attr"`
		} `xml:"nvGraphicFramePr>cNvPr"`
		Chart struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"graphic>graphicData>chart"`
	} `xml:"graphicFrame"`
}

type xlsxDrawing struct {
	TwoCell  []xlsxAnchor `xml:"twoCellAnchor"`
	OneCell  []xlsxAnchor `xml:"oneCellAnchor"`
	Absolute []xlsxAnchor `xml:"absoluteAnchor"`
}

type xlsxSeries struct {
	Name    string `xml:"tx>strRef>f"`
	Literal string `xml:"tx>v"`
	CatStr  string `xml:"cat>strRef>f"`
	CatNum  string `xml:"cat>numRef>f"`
	Val     string `xml:"val>numRef>f"`
}

type xlsxPlot struct {
	XMLName xml.Name
	BarDir  struct {
		Val string `xml:"val,attr"`
	} `xml:"barDir"`
	Series []xlsxSeries `xml:"ser"`
}

type xlsxChartSpace struct {
	Chart struct {
		Title    []string `xml:"title>tx>rich>p>r>t"`
		PlotArea struct {
			Plots []xlsxPlot `xml:",any"`
		} `xml:"plotArea"`
	} `xml:"chart"`
}

// ExtractCharts lists the charts embedded in each sheet of an xlsx file.
func ExtractCharts(xlsxPath string) (*models.WorkbookCharts, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	result := &models.WorkbookCharts{
		BookName: filepath.Base(xlsxPath),
		Sheets:   make(map[string][]models.Chart),
	}

	var wb xlsxWorkbook
	if err := decodeZipXML(&r.Reader, "xl/workbook.xml", &wb); err != nil {
		return nil, err
	}
	wbRels, err := readRels(&r.Reader, "xl/workbook.xml")
	if err != nil {
		return nil, err
	}

	for _, sheet := range wb.Sheets {
		sheetPath, ok := wbRels[sheet.RID]
		if !ok {
			continue
		}
		sheetRels, err := readRels(&r.Reader, sheetPath)
		if err != nil {
			continue
		}
		for _, target := range sheetRels {
			if !strings.HasPrefix(path.Base(target), "drawing") {
				continue
			}
			charts := chartsInDrawing(&r.Reader, target)
			result.Sheets[sheet.Name] = append(result.Sheets[sheet.Name], charts...)
		}
	}

	return result, nil
}

// chartsInDrawing resolves every chart frame of a drawing part.
func chartsInDrawing(r *zip.Reader, drawingPath string) []models.Chart {
	var drawing xlsxDrawing
	if err := decodeZipXML(r, drawingPath, &drawing); err != nil {
		return nil
	}
	rels, err := readRels(r, drawingPath)
	if err != nil {
		return nil
	}

	anchors := append(append(drawing.TwoCell, drawing.OneCell...), drawing.Absolute...)
	var charts []models.Chart
	for _, a := range anchors {
		if a.Frame == nil || a.Frame.Chart.RID == "" {
			continue
		}
		chartPath, ok := rels[a.Frame.Chart.RID]
		if !ok {
			continue
		}
		var space xlsxChartSpace
		if err := decodeZipXML(r, chartPath, &space); err != nil {
			continue
		}
		charts = append(charts, toChart(a.Frame.Props.Name, space))
	}
	return charts
}

func toChart(name string, space xlsxChartSpace) models.Chart {
	chart := models.Chart{
		Name:      name,
		ChartType: "unknown",
		Title:     strings.Join(space.Chart.Title, ""),
	}

	for _, plot := range space.Chart.PlotArea.Plots {
		typeName, ok := ChartTypeMap[plot.XMLName.Local]
		if !ok {
			continue
		}
		if plot.XMLName.Local == "barChart" && plot.BarDir.Val == "col" {
			typeName = "Column"
		}
		chart.ChartType = typeName

		for _, s := range plot.Series {
			series := models.ChartSeries{
				Name:   s.Name,
				XRange: s.CatStr,
				YRange: s.Val,
			}
			if series.Name == "" {
				series.Name = s.Literal
			}
			if series.XRange == "" {
				series.XRange = s.CatNum
			}
			chart.Series = append(chart.Series, series)
		}
	}

	return chart
}

// readRels returns the relationship targets of a part, keyed by id and
// resolved to zip paths.
func readRels(r *zip.Reader, partPath string) (map[string]string, error) {
	dir, file := path.Split(partPath)
	var rels xlsxRelationships
	if err := decodeZipXML(r, path.Join(dir, "_rels", file+".rels"), &rels); err != nil {
		return nil, err
	}

	result := make(map[string]string, len(rels.Rels))
	for _, rel := range rels.Rels {
		result[rel.ID] = resolveTarget(dir, rel.Target)
	}
	return result, nil
}

// resolveTarget resolves a relationship target against the directory of the
// part that owns it. Absolute targets are rooted at the package root.
func resolveTarget(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(dir, target)
}

func decodeZipXML(r *zip.Reader, name string, v any) error {
	f, err := r.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}
