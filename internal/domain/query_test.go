package domain

import (
	"errors"
	"math"
	"testing"
)

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"empty store", 1, 10, 0, 0, false, false},
		{"single partial page", 1, 10, 3, 1, false, false},
		{"exact multiple", 1, 10, 20, 2, true, false},
		{"last partial page", 2, 10, 12, 2, false, true},
		{"middle page", 2, 5, 12, 3, true, true},
		{"beyond last page", 5, 10, 12, 2, false, true},
		{"limit one", 3, 1, 3, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPaginationInfo(tt.page, tt.limit, tt.total)
			if got.CurrentPage != tt.page {
				t.Errorf("CurrentPage = %d, want %d", got.CurrentPage, tt.page)
			}
			if got.TotalItems != tt.total {
				t.Errorf("TotalItems = %d, want %d", got.TotalItems, tt.total)
			}
			if got.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, tt.wantPages)
			}
			if got.HasNextPage != tt.wantNext {
				t.Errorf("HasNextPage = %v, want %v", got.HasNextPage, tt.wantNext)
			}
			if got.HasPrevPage != tt.wantPrev {
				t.Errorf("HasPrevPage = %v, want %v", got.HasPrevPage, tt.wantPrev)
			}
		})
	}
}

func TestPageSelector(t *testing.T) {
	tests := []struct {
		name       string
		sel        PageSelector
		limit      int
		wantOffset int
		wantPage   int
	}{
		{"first page", PageAt(1), 10, 0, 1},
		{"third page", PageAt(3), 10, 20, 3},
		{"skip zero", SkipBy(0), 10, 0, 1},
		{"skip aligned", SkipBy(20), 10, 20, 3},
		{"skip unaligned", SkipBy(15), 10, 15, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Offset(tt.limit); got != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", got, tt.wantOffset)
			}
			if got := tt.sel.CurrentPage(tt.limit); got != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", got, tt.wantPage)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"todo", "doing", "done"} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", s, err)
		}
		if got.String() != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}

	for _, s := range []string{"", "archived", "Done", "TODO", " done"} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidStatus", s, err)
		}
	}
}

func TestNewTask(t *testing.T) {
	task, err := NewTask("Write docs", StatusTodo, 2)
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}
	if len(task.ID) != 36 {
		t.Errorf("expected uuid id, got %q", task.ID)
	}
	if task.CreatedAt.IsZero() {
		t.Errorf("expected CreatedAt to be set")
	}
	if task.Priority != 2 {
		t.Errorf("Priority = %d, want 2", task.Priority)
	}

	if _, err := NewTask("   ", StatusTodo, 0); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := NewTask("x", TaskStatus("archived"), 0); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	if verr.OrNil() != nil {
		t.Fatalf("empty ValidationError should be nil")
	}

	verr.Add("limit", "bad limit")
	verr.Add("status", "bad status")

	err := verr.OrNil()
	if err == nil {
		t.Fatalf("expected error")
	}

	var got *ValidationError
	if !errors.As(err, &got) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !got.HasField("limit") || !got.HasField("status") || got.HasField("page") {
		t.Errorf("unexpected fields: %+v", got.Fields)
	}
	want := "invalid query parameters: limit: bad limit; status: bad status"
	if got.Error() != want {
		t.Errorf("Error() = %q, want %q", got.Error(), want)
	}
}

func TestPageSelectorOffsetSaturates(t *testing.T) {
	tests := []struct {
		name     string
		selector PageSelector
		limit    int
		want     int
	}{
		{"first page", PageAt(1), 10, 0},
		{"third page", PageAt(3), 10, 20},
		{"overflowing page", PageAt(math.MaxInt/10 + 2), 10, MaxOffset},
		{"largest page at max limit", PageAt(MaxPage), MaxLimit, (MaxPage - 1) * MaxLimit},
		{"negative skip", SkipBy(-5), 10, 0},
		{"huge skip", SkipBy(math.MaxInt), 10, MaxOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.selector.Offset(tt.limit); got != tt.want {
				t.Errorf("Offset(%d) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}

	if got := SkipBy(math.MaxInt).CurrentPage(1); got != MaxOffset+1 {
		t.Errorf("CurrentPage = %d, want %d", got, MaxOffset+1)
	}
}
