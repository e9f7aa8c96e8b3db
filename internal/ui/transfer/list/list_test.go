package list

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"shuttle/internal/domain"
	"shuttle/internal/ui/rows"
)

func baseProps(checked []string, filter string) Props {
	return Props{
		Direction: domain.DirectionLeft,
		Items:     items("a", "b", "c"),
		Checked:   checked,
		Filter:    filter,
		Title:     "Source",
		NotFound:  "Not Found",
		ItemUnit:  "item",
		ItemsUnit: "items",
		Lazy:      true,
	}
}

func headerOf(m *Model) string {
	return m.header(m.innerWidth())
}

func TestHeaderNothingChecked(t *testing.T) {
	m := New(baseProps(nil, ""))

	assert.Contains(t, headerOf(m), "3 items")
	assert.Contains(t, headerOf(m), "[ ]")
	assert.Contains(t, headerOf(m), "Source")
	assert.Equal(t, domain.CheckNone, m.Status())
}

func TestHeaderAllChecked(t *testing.T) {
	m := New(baseProps([]string{"a", "b", "c"}, ""))

	assert.Contains(t, headerOf(m), "3/3 items")
	assert.Contains(t, headerOf(m), "[x]")
	assert.Equal(t, domain.CheckAll, m.Status())
}

func TestHeaderSomeChecked(t *testing.T) {
	m := New(baseProps([]string{"a"}, ""))

	assert.Contains(t, headerOf(m), "1/3 items")
	assert.Contains(t, headerOf(m), "[-]")
	assert.Equal(t, domain.CheckPart, m.Status())
}

func TestFilterNarrowsEligible(t *testing.T) {
	m := New(baseProps([]string{"b"}, "b"))

	assert.Equal(t, items("b"), m.Eligible())
	assert.Equal(t, domain.CheckAll, m.Status(), "status is computed over the filtered items only")
	assert.Contains(t, headerOf(m), "1/3 items", "counts still use every item")
}

func TestDisabledItemsAreNotEligible(t *testing.T) {
	props := baseProps([]string{"a", "b"}, "")
	props.Items[2].Disabled = true
	m := New(props)

	assert.Equal(t, items("a", "b"), m.Eligible())
	assert.Len(t, m.Filtered(), 3)
	assert.Equal(t, domain.CheckAll, m.Status())
}

func TestHandleSelectRequestsToggle(t *testing.T) {
	type call struct {
		key     string
		checked bool
	}
	var calls []call

	props := baseProps([]string{"a"}, "")
	props.OnSelect = func(item domain.Item, checked bool) {
		calls = append(calls, call{item.Key, checked})
	}
	m := New(props)

	m.HandleSelect(domain.Item{Key: "a"})
	m.HandleSelect(domain.Item{Key: "b"})

	assert.Equal(t, []call{{"a", false}, {"b", true}}, calls)
	assert.Equal(t, domain.CheckPart, m.Status(), "selection is never updated locally")
}

func TestHandleSelectIgnoresDisabled(t *testing.T) {
	called := false
	props := baseProps(nil, "")
	props.OnSelect = func(domain.Item, bool) { called = true }

	m := New(props)
	m.HandleSelect(domain.Item{Key: "a", Disabled: true})
	assert.False(t, called)

	props.Disabled = true
	m.SetProps(props)
	m.HandleSelect(domain.Item{Key: "a"})
	assert.False(t, called)
}

func TestSelectAllRoundTrip(t *testing.T) {
	props := baseProps(nil, "")
	var m *Model
	props.OnSelectAll = func(eligible []domain.Item, checkAll bool) {
		if checkAll {
			props.Checked = nil
		} else {
			props.Checked = props.Checked[:0:0]
			for _, item := range eligible {
				props.Checked = append(props.Checked, item.Key)
			}
		}
		m.SetProps(props)
	}
	m = New(props)

	m.HandleSelectAll()
	assert.Equal(t, domain.CheckAll, m.Status())
	assert.Equal(t, []string{"a", "b", "c"}, m.Props().Checked)

	m.HandleSelectAll()
	assert.Equal(t, domain.CheckNone, m.Status())
}

func TestSelectAllFromPartChecksRemaining(t *testing.T) {
	var gotEligible []domain.Item
	gotCheckAll := true

	props := baseProps([]string{"a"}, "")
	props.OnSelectAll = func(eligible []domain.Item, checkAll bool) {
		gotEligible, gotCheckAll = eligible, checkAll
	}
	New(props).HandleSelectAll()

	assert.Equal(t, items("a", "b", "c"), gotEligible)
	assert.False(t, gotCheckAll)
}

func TestSelectAllDisabledList(t *testing.T) {
	called := false
	props := baseProps(nil, "")
	props.Disabled = true
	props.OnSelectAll = func([]domain.Item, bool) { called = true }

	New(props).HandleSelectAll()
	assert.False(t, called)
}

func TestMountTask(t *testing.T) {
	m := New(baseProps(nil, ""))
	require.False(t, m.Mounted())

	cmd := m.Init()
	require.NotNil(t, cmd)
	msg := cmd()

	fired, ok := msg.(TaskFiredMsg)
	require.True(t, ok)
	assert.Equal(t, TaskMount, fired.Kind)

	other := New(baseProps(nil, ""))
	other.Update(msg)
	assert.False(t, other.Mounted(), "tasks are routed by list id")

	m.Update(msg)
	assert.True(t, m.Mounted())
	assert.Zero(t, m.Pending())
}

func TestDestroyBeforeMount(t *testing.T) {
	m := New(baseProps(nil, ""), WithDelay(time.Hour))
	cmd := m.Init()

	m.Destroy()
	assert.Nil(t, cmd())

	m.Update(TaskFiredMsg{ListID: m.ID(), TaskID: 1, Kind: TaskMount})
	assert.False(t, m.Mounted())
}

func TestFilterChangeReportsAndSchedulesReplay(t *testing.T) {
	var filters []string
	props := baseProps(nil, "")
	props.OnFilter = func(v string) { filters = append(filters, v) }
	m := New(props, WithDelay(time.Hour))

	cmd := m.HandleFilter("x")
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.Pending())

	assert.Nil(t, m.HandleFilter(""), "clearing to empty schedules nothing")
	assert.Equal(t, 1, m.Pending())

	m.HandleFilter("xy")
	assert.Equal(t, 2, m.Pending(), "each change gets its own task")
	assert.Equal(t, []string{"x", "", "xy"}, filters)

	m.Destroy()
	assert.Zero(t, m.Pending())
}

func TestDestroyCancelsScrollReplay(t *testing.T) {
	defer goleak.VerifyNone(t)

	scrolls := 0
	props := baseProps(nil, "")
	props.OnScroll = func(rows.ScrollMsg) { scrolls++ }
	m := New(props, WithDelay(time.Hour))

	cmd := m.HandleFilter("x")
	require.NotNil(t, cmd)

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	m.Destroy()

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("scroll replay was not cancelled")
	}
	assert.Zero(t, scrolls, "no synthetic scroll after teardown")
	assert.Nil(t, m.HandleFilter("y"))
}

func manyItems(n int) []domain.Item {
	out := make([]domain.Item, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Item{Key: fmt.Sprintf("item-%02d", i)})
	}
	return out
}

func TestScrollReplayRemeasuresLazyRows(t *testing.T) {
	var synthetic []bool
	props := baseProps(nil, "")
	props.Items = manyItems(20)
	props.Height = 8 // four rows
	props.OnScroll = func(msg rows.ScrollMsg) { synthetic = append(synthetic, msg.Synthetic) }
	props.OnFilter = func(string) {}
	m := New(props)

	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	from, to := m.rows.Window()
	require.Equal(t, 16, from)
	require.Equal(t, 20, to)

	cmd := m.HandleFilter("item-0")
	props.Filter = "item-0"
	m.SetProps(props)

	from, to = m.rows.Window()
	assert.Equal(t, 16, from, "lazy rows keep the stale window")
	assert.Equal(t, 20, to)
	assert.Empty(t, m.rows.View())

	m.Update(cmd())

	from, to = m.rows.Window()
	assert.Equal(t, 6, from)
	assert.Equal(t, 10, to)
	assert.Contains(t, m.View(), "item-09")
	assert.Equal(t, []bool{false, true}, synthetic)
}

func TestScrollReplaySkippedWithoutRegion(t *testing.T) {
	props := baseProps(nil, "")
	props.RenderList = func(ctx RenderContext) string { return "custom" }
	m := New(props)

	cmd := m.HandleFilter("a")
	require.NotNil(t, cmd)
	assert.NotPanics(t, func() { m.Update(cmd()) })
	assert.Zero(t, m.Pending())
}

func TestBodyOverrideChain(t *testing.T) {
	props := baseProps([]string{"a"}, "b")
	var got RenderContext
	props.Body = func(ctx RenderContext) string {
		got = ctx
		return "full body"
	}
	props.RenderList = func(RenderContext) string { return "list only" }
	m := New(props)

	view := m.View()
	assert.Contains(t, view, "full body")
	assert.NotContains(t, view, "list only")
	assert.Equal(t, items("b"), got.Items)
	assert.Equal(t, []string{"a"}, got.Checked)

	props.Body = nil
	m.SetProps(props)
	view = m.View()
	assert.Contains(t, view, "list only")

	props.RenderList = nil
	m.SetProps(props)
	view = m.View()
	assert.Contains(t, view, "[ ] b")
	assert.NotContains(t, view, "list only")
}

func TestNotFound(t *testing.T) {
	m := New(baseProps(nil, "zzz"))
	assert.Contains(t, m.View(), "Not Found")

	empty := baseProps(nil, "")
	empty.Items = nil
	assert.Contains(t, New(empty).View(), "Not Found")
}

func TestFooter(t *testing.T) {
	props := baseProps(nil, "")
	m := New(props)
	withoutFooter := m.bodyHeight(m.footer())

	props.Footer = func(p Props) string {
		return fmt.Sprintf("%d total", len(p.Items))
	}
	m.SetProps(props)
	assert.Contains(t, m.View(), "3 total")
	assert.Less(t, m.bodyHeight(m.footer()), withoutFooter)

	props.Footer = func(Props) string { return "" }
	m.SetProps(props)
	assert.Equal(t, withoutFooter, m.bodyHeight(m.footer()), "empty footer is not rendered")
}

func TestViewIsIdempotent(t *testing.T) {
	props := baseProps([]string{"a"}, "")
	props.ShowSearch = true
	m := New(props)

	first := m.View()
	assert.Equal(t, first, m.View())
	assert.Equal(t, domain.CheckPart, m.Status())
	assert.Equal(t, 1, strings.Count(first, "[x] a"))
}

func TestSearchInputReportsEdits(t *testing.T) {
	var filters []string
	cleared := false
	props := baseProps(nil, "")
	props.ShowSearch = true
	props.OnFilter = func(v string) { filters = append(filters, v) }
	props.OnClear = func() { cleared = true }
	m := New(props, WithDelay(time.Hour))
	defer m.Destroy()

	m.FocusSearch()
	require.True(t, m.SearchFocused())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	assert.Equal(t, []string{"b"}, filters)
	assert.Equal(t, 1, m.Pending())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, cleared)

	m.BlurSearch()
	assert.False(t, m.SearchFocused())
}

func TestRowKeysSelectThroughOwner(t *testing.T) {
	var selected []string
	props := baseProps(nil, "")
	props.Focused = true
	props.OnSelect = func(item domain.Item, checked bool) {
		if checked {
			selected = append(selected, item.Key)
		}
	}
	m := New(props)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.HandleSelectCurrent()

	assert.Equal(t, []string{"b", "b"}, selected)
}
