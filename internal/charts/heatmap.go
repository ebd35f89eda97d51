package charts

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pinchbench/pinchboard/internal/models"
)

// newCollator orders names alphabetically with case as a tiebreak. A Collator
// is not safe for concurrent use, so callers create one per sort.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// HeatmapSort orders heatmap rows.
type HeatmapSort string

const (
	HeatmapByScore HeatmapSort = "score"
	HeatmapByName  HeatmapSort = "name"
)

// ParseHeatmapSort maps user input to a HeatmapSort, defaulting to score.
func ParseHeatmapSort(s string) HeatmapSort {
	if HeatmapSort(s) == HeatmapByName {
		return HeatmapByName
	}
	return HeatmapByScore
}

// LegendStops are the ratios shown in the heatmap color legend.
var LegendStops = []float64{0, 0.3, 0.5, 0.7, 0.85, 1.0}

// Bucket is one color band of the heatmap scale.
type Bucket struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// ScoreBucket returns the color band for a task score ratio in [0, 1].
// Text colors use coarser bands than backgrounds.
func ScoreBucket(ratio float64) Bucket {
	b := Bucket{Text: scoreTextColor(ratio)}
	switch {
	case ratio >= 0.85:
		b.Name, b.Background = "excellent", "hsl(142, 71%, 35%)"
	case ratio >= 0.7:
		b.Name, b.Background = "good", "hsl(142, 50%, 28%)"
	case ratio >= 0.5:
		b.Name, b.Background = "fair", "hsl(48, 90%, 35%)"
	case ratio >= 0.3:
		b.Name, b.Background = "weak", "hsl(25, 90%, 35%)"
	case ratio > 0:
		b.Name, b.Background = "poor", "hsl(0, 70%, 35%)"
	default:
		b.Name, b.Background = "failed", "hsl(0, 60%, 25%)"
	}
	return b
}

func scoreTextColor(ratio float64) string {
	switch {
	case ratio >= 0.7:
		return "hsl(142, 70%, 75%)"
	case ratio >= 0.5:
		return "hsl(48, 90%, 75%)"
	case ratio >= 0.3:
		return "hsl(25, 90%, 75%)"
	}
	return "hsl(0, 70%, 75%)"
}

// TaskScore is one model's result on one task.
type TaskScore struct {
	Score    float64
	MaxScore float64
	TaskName string
	Category string
}

// ModelTasks is one heatmap row before layout.
type ModelTasks struct {
	Model      string
	Provider   string
	Percentage float64
	Tasks      map[string]TaskScore
	// order keeps the submission's task order for first-seen resolution.
	order []string
}

// ModelTasksFromSubmission pairs a leaderboard entry with the task results
// of its best submission.
func ModelTasksFromSubmission(entry models.LeaderboardEntry, sub models.Submission) ModelTasks {
	mt := ModelTasks{
		Model:      entry.Model,
		Provider:   entry.Provider,
		Percentage: entry.Percentage,
		Tasks:      make(map[string]TaskScore, len(sub.TaskResults)),
	}
	for _, t := range sub.TaskResults {
		if _, seen := mt.Tasks[t.TaskID]; !seen {
			mt.order = append(mt.order, t.TaskID)
		}
		mt.Tasks[t.TaskID] = TaskScore{
			Score:    t.Score,
			MaxScore: t.MaxScore,
			TaskName: t.TaskName,
			Category: t.Category,
		}
	}
	return mt
}

func (m ModelTasks) taskIDs() []string {
	if len(m.order) == len(m.Tasks) {
		return m.order
	}
	ids := make([]string, 0, len(m.Tasks))
	for id := range m.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HeatmapTask is one heatmap column.
type HeatmapTask struct {
	TaskID   string `json:"task_id"`
	TaskName string `json:"task_name"`
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
}

// CategoryGroup is a contiguous run of columns sharing a category.
type CategoryGroup struct {
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
	Count    int    `json:"count"`
}

// HeatmapCell is a model's score on one task. Missing results have HasData false.
type HeatmapCell struct {
	TaskID  string  `json:"task_id"`
	HasData bool    `json:"has_data"`
	Score   float64 `json:"score,omitempty"`
	Max     float64 `json:"max_score,omitempty"`
	Ratio   float64 `json:"ratio"`
	Percent int     `json:"percent"`
	Bucket  *Bucket `json:"bucket,omitempty"`
}

// HeatmapRow is one model's line of cells, aligned with Heatmap.Tasks.
type HeatmapRow struct {
	Model      string        `json:"model"`
	Provider   string        `json:"provider"`
	Color      string        `json:"color"`
	Percentage float64       `json:"percentage"`
	Cells      []HeatmapCell `json:"cells"`
}

// Heatmap is the model-by-task score grid.
type Heatmap struct {
	Sort        HeatmapSort     `json:"sort"`
	Tasks       []HeatmapTask   `json:"tasks"`
	Groups      []CategoryGroup `json:"groups"`
	Rows        []HeatmapRow    `json:"rows"`
	Legend      []float64       `json:"legend"`
	Sufficient  bool            `json:"sufficient"`
	EmptyReason string          `json:"empty_reason,omitempty"`
}

// BuildHeatmap lays out the grid. Columns are the union of all tasks, with the
// first row that mentions a task deciding its name and category, sorted by
// category and then task name.
func BuildHeatmap(rows []ModelTasks, order HeatmapSort) Heatmap {
	h := Heatmap{
		Sort:   order,
		Tasks:  []HeatmapTask{},
		Groups: []CategoryGroup{},
		Rows:   []HeatmapRow{},
		Legend: LegendStops,
	}

	seen := map[string]bool{}
	for _, r := range rows {
		for _, id := range r.taskIDs() {
			if seen[id] {
				continue
			}
			seen[id] = true
			t := r.Tasks[id]
			h.Tasks = append(h.Tasks, HeatmapTask{
				TaskID:   id,
				TaskName: t.TaskName,
				Category: t.Category,
				Icon:     CategoryIcon(t.Category),
			})
		}
	}
	coll := newCollator()
	sort.SliceStable(h.Tasks, func(i, j int) bool {
		a, b := h.Tasks[i], h.Tasks[j]
		if c := coll.CompareString(a.Category, b.Category); c != 0 {
			return c < 0
		}
		return coll.CompareString(a.TaskName, b.TaskName) < 0
	})

	for i, t := range h.Tasks {
		if i > 0 && h.Tasks[i-1].Category == t.Category {
			h.Groups[len(h.Groups)-1].Count++
			continue
		}
		h.Groups = append(h.Groups, CategoryGroup{Category: t.Category, Icon: t.Icon, Count: 1})
	}

	sorted := make([]ModelTasks, len(rows))
	copy(sorted, rows)
	if order == HeatmapByName {
		sort.SliceStable(sorted, func(i, j int) bool { return coll.CompareString(sorted[i].Model, sorted[j].Model) < 0 })
	} else {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Percentage > sorted[j].Percentage })
	}

	for _, r := range sorted {
		row := HeatmapRow{
			Model:      r.Model,
			Provider:   r.Provider,
			Color:      ProviderColor(r.Provider),
			Percentage: r.Percentage,
			Cells:      make([]HeatmapCell, 0, len(h.Tasks)),
		}
		for _, t := range h.Tasks {
			cell := HeatmapCell{TaskID: t.TaskID}
			if ts, ok := r.Tasks[t.TaskID]; ok {
				ratio := 0.0
				if ts.MaxScore != 0 {
					ratio = ts.Score / ts.MaxScore
				}
				bucket := ScoreBucket(ratio)
				cell = HeatmapCell{
					TaskID:  t.TaskID,
					HasData: true,
					Score:   ts.Score,
					Max:     ts.MaxScore,
					Ratio:   ratio,
					Percent: int(roundHalfUp(ratio * 100)),
					Bucket:  &bucket,
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		h.Rows = append(h.Rows, row)
	}

	h.Sufficient = len(h.Rows) > 0 && len(h.Tasks) > 0
	if !h.Sufficient {
		h.EmptyReason = "No task data available."
	}
	return h
}
