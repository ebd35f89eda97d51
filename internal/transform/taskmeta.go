package transform

// TaskMeta is the display metadata of a benchmark task.
type TaskMeta struct {
	Name     string
	Category string
}

// DefaultCategory is used when no category can be resolved for a task.
const DefaultCategory = "other"

// knownTasks backs task names and categories for submissions that predate
// task frontmatter.
var knownTasks = map[string]TaskMeta{
	"task_00_sanity":   {Name: "Sanity Check", Category: "validation"},
	"task_01_calendar": {Name: "Calendar Event", Category: "calendar"},
	"task_02_stock":    {Name: "Stock Research", Category: "api"},
	"task_03_blog":     {Name: "Blog Post", Category: "writing"},
	"task_04_weather":  {Name: "Weather Script", Category: "coding"},
	"task_05_summary":  {Name: "Document Summary", Category: "comprehension"},
	"task_06_events":   {Name: "Events Research", Category: "research"},
	"task_07_email":    {Name: "Email Draft", Category: "writing"},
	"task_08_memory":   {Name: "Memory Retrieval", Category: "context"},
	"task_09_files":    {Name: "File Operations", Category: "coding"},
	"task_10_workflow": {Name: "Multi-step Workflow", Category: "complex"},
}

// LookupTask returns the built-in metadata for taskID.
func LookupTask(taskID string) (TaskMeta, bool) {
	m, ok := knownTasks[taskID]
	return m, ok
}
