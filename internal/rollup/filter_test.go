package rollup

import (
	"reflect"
	"testing"
	"time"

	"github.com/TWRT/ops-dashboard/internal/models"
)

func TestPartitionDone(t *testing.T) {
	todos := []models.Todo{
		todo(1, "A", models.PositionTodo),
		todo(2, "B", models.PositionDone),
		todo(3, "C", models.PositionTodo),
		todo(4, "D", models.PositionDone),
	}

	got := titles(FilterTodos(todos, TodoFilter{Position: All, Project: All, Assignee: All}))
	want := []string{"A", "C", "B", "D"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTodoFilterDimensions(t *testing.T) {
	base := []models.Todo{
		{ID: 1, Title: "Write Report", Position: "todo", DueDate: datePtr(2025, time.March, 1),
			Project: &models.ProjectRef{ID: 7, DocumentID: "proj-7"}, Assignee: &models.UserRef{ID: 3}},
		{ID: 2, Title: "deploy", Description: "Ship the REPORT service", Position: "in-progress", DueDate: datePtr(2025, time.March, 10),
			Project: &models.ProjectRef{ID: 8, DocumentID: "proj-8"}},
		{ID: 3, Title: "retro", DescriptionHistory: "[1/2/2025, 9:00:00 AM] report reviewed", Position: "done"},
		{ID: 4, Title: "plan", Position: "todo", DueDate: datePtr(2025, time.March, 20), Assignee: &models.UserRef{ID: 3}},
	}

	tests := []struct {
		name   string
		filter TodoFilter
		want   []string
	}{
		{"empty filter keeps all", TodoFilter{}, []string{"Write Report", "deploy", "retro", "plan"}},
		{"position", TodoFilter{Position: "todo"}, []string{"Write Report", "plan"}},
		{"project by document id", TodoFilter{Project: "proj-8"}, []string{"deploy"}},
		{"project by numeric id", TodoFilter{Project: "7"}, []string{"Write Report"}},
		{"assignee", TodoFilter{Assignee: "3"}, []string{"Write Report", "plan"}},
		{"search across title description and history", TodoFilter{Search: "RePoRt"}, []string{"Write Report", "deploy", "retro"}},
		{"date from inclusive", TodoFilter{DateFrom: datePtr(2025, time.March, 10)}, []string{"deploy", "plan"}},
		{"date to inclusive", TodoFilter{DateTo: datePtr(2025, time.March, 10)}, []string{"Write Report", "deploy"}},
		{"combined", TodoFilter{Position: "todo", Assignee: "3", DateFrom: datePtr(2025, time.March, 2)}, []string{"plan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(Select(base, tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTodoFilterOrderIndependent(t *testing.T) {
	var todos []models.Todo
	positions := []models.Position{"todo", "in-progress", "done"}
	for i := 0; i < 30; i++ {
		td := models.Todo{
			ID:       int64(i),
			Title:    []string{"alpha", "beta", "gamma"}[i%3],
			Position: positions[i%3],
			DueDate:  datePtr(2025, time.April, 1+i%28),
			Project:  &models.ProjectRef{ID: int64(i % 4), DocumentID: "p"},
			Assignee: &models.UserRef{ID: int64(i % 5)},
		}
		todos = append(todos, td)
	}

	from := date(2025, time.April, 3)
	to := date(2025, time.April, 25)
	steps := []TodoFilter{
		{Position: "todo"},
		{Project: "1"},
		{Assignee: "2"},
		{Search: "ALP"},
		{DateFrom: &from, DateTo: &to},
	}
	combined := TodoFilter{Position: "todo", Project: "1", Assignee: "2", Search: "ALP", DateFrom: &from, DateTo: &to}
	want := titlesWithIDs(Select(todos, combined))

	orders := [][]int{{0, 1, 2, 3, 4}, {4, 3, 2, 1, 0}, {2, 0, 4, 1, 3}, {3, 4, 0, 2, 1}}
	for _, order := range orders {
		got := todos
		for _, i := range order {
			got = Select(got, steps[i])
		}
		if !reflect.DeepEqual(titlesWithIDs(got), want) {
			t.Errorf("order %v: expected %v, got %v", order, want, titlesWithIDs(got))
		}
	}
}

func titlesWithIDs(todos []models.Todo) []int64 {
	ids := make([]int64, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	return ids
}

func TestFilterProjects(t *testing.T) {
	acme := models.Client{DocumentID: "acme"}
	globex := models.Client{DocumentID: "globex"}
	views := []models.ProjectView{
		{Project: models.Project{Name: "one", Clients: []models.Client{acme}}, Position: models.ProjectInProgress},
		{Project: models.Project{Name: "two", Clients: []models.Client{acme, globex}}, Position: models.ProjectDone},
		{Project: models.Project{Name: "three"}, Position: models.ProjectNoTodos},
	}

	names := func(vs []models.ProjectView) []string {
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = v.Name
		}
		return out
	}

	tests := []struct {
		name   string
		filter ProjectFilter
		want   []string
	}{
		{"all", ProjectFilter{Status: All, Client: All}, []string{"one", "two", "three"}},
		{"status title case", ProjectFilter{Status: "In-Progress"}, []string{"one"}},
		{"status lower case", ProjectFilter{Status: "no-todos"}, []string{"three"}},
		{"client", ProjectFilter{Client: "globex"}, []string{"two"}},
		{"status and client", ProjectFilter{Status: "done", Client: "acme"}, []string{"two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(FilterProjects(views, tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
