package core

import (
	"testing"
	"time"
)

func TestBuildTasks_AssignsTaskAndItemIDs(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := buildTasks("EST-1001", []EstimationTaskInput{
		{Title: "Supply", Items: []EstimationItemInput{
			{ProductID: "PRD-1001", Name: "Shelving unit", Quantity: dec("2"), Cost: dec("50")},
			{Name: "Delivery", Quantity: dec("1"), Cost: dec("30")},
		}},
		{Title: "Install", Items: []EstimationItemInput{
			{Name: "Labour", Quantity: dec("5"), Cost: dec("20")},
		}},
	}, now)

	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != "EST-1001-T1" || tasks[1].ID != "EST-1001-T2" {
		t.Errorf("task ids = %q, %q", tasks[0].ID, tasks[1].ID)
	}
	if tasks[0].Items[0].ID != "PRD-1001" || tasks[0].Items[0].Type != ItemProduct {
		t.Errorf("catalog line = %q/%q, want PRD-1001/product", tasks[0].Items[0].ID, tasks[0].Items[0].Type)
	}
	if tasks[0].Items[1].Type != ItemAdhoc || tasks[1].Items[0].Type != ItemAdhoc {
		t.Error("lines without a product id must be ad-hoc")
	}
	if tasks[0].Items[1].ID == tasks[1].Items[0].ID {
		t.Errorf("ad-hoc ids collide: %q", tasks[0].Items[1].ID)
	}
}

// The same product may appear on several lines, within one task or across
// tasks. Each occurrence stays a separate line carrying the product's ID.
func TestBuildTasks_RepeatedCatalogLines(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := buildTasks("EST-1002", []EstimationTaskInput{
		{Title: "Phase one", Items: []EstimationItemInput{
			{ProductID: "PRD-1001", Name: "Cable drum", Quantity: dec("3"), Cost: dec("40")},
			{ProductID: "PRD-1001", Name: "Cable drum", Quantity: dec("2"), Cost: dec("40")},
		}},
		{Title: "Phase two", Items: []EstimationItemInput{
			{ProductID: "PRD-1001", Name: "Cable drum", Quantity: dec("1"), Cost: dec("40")},
		}},
	}, now)

	var lines int
	for _, task := range tasks {
		for _, item := range task.Items {
			if item.ID != "PRD-1001" || item.Type != ItemProduct {
				t.Errorf("line = %q/%q, want PRD-1001/product", item.ID, item.Type)
			}
			lines++
		}
	}
	if lines != 3 {
		t.Fatalf("got %d lines, want 3", lines)
	}
	if !EstimationTotal(tasks).Equal(dec("240")) {
		t.Errorf("total = %s, want 240", EstimationTotal(tasks))
	}
}

func TestEstimationInputValidate(t *testing.T) {
	valid := EstimationInput{
		Title: "Fit-out",
		Tasks: []EstimationTaskInput{
			{Title: "Supply", Items: []EstimationItemInput{
				{Name: "Shelving", Quantity: dec("1"), Cost: dec("10")},
			}},
		},
	}
	if errs := valid.validate(); !errs.Empty() {
		t.Errorf("valid input rejected: %v", errs)
	}

	empty := EstimationInput{}
	errs := empty.validate()
	for _, field := range []string{"title", "tasks"} {
		if len(errs[field]) == 0 {
			t.Errorf("missing error for %q", field)
		}
	}

	bad := EstimationInput{
		Title: "Fit-out",
		Tasks: []EstimationTaskInput{
			{Items: []EstimationItemInput{
				{Name: "", Quantity: dec("0"), Cost: dec("-1")},
			}},
		},
	}
	errs = bad.validate()
	for _, field := range []string{
		"tasks[0].title",
		"tasks[0].items[0].name",
		"tasks[0].items[0].quantity",
		"tasks[0].items[0].cost",
	} {
		if len(errs[field]) == 0 {
			t.Errorf("missing error for %q", field)
		}
	}
}
