package app

import (
	"sync"
	"testing"

	"github.com/soocke/facelog-go/config"
	"github.com/soocke/facelog-go/domain/screen"
)

func TestNavigator_GoBackFromAnyGoroutine(t *testing.T) {
	n := NewNavigator(screen.Params{ProjectName: "me", DateString: "2024-01-01"})
	if n.Left() {
		t.Fatalf("new navigator should not have left")
	}
	if p := n.Params(); p.ProjectName != "me" || p.DateString != "2024-01-01" {
		t.Fatalf("unexpected params %+v", p)
	}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.GoBack()
		}()
	}
	wg.Wait()
	if !n.Left() || n.Backs() != 4 {
		t.Fatalf("left=%v backs=%d", n.Left(), n.Backs())
	}
}

func TestPreviewSize(t *testing.T) {
	cfg := config.DefaultConfig()
	w, h := PreviewSize(cfg)
	if w != cfg.WindowWidth-40 || h != cfg.WindowHeight-260 {
		t.Fatalf("unexpected preview size %dx%d", w, h)
	}
	cfg.WindowWidth, cfg.WindowHeight = 100, 100
	if w, h := PreviewSize(cfg); w != 160 || h != 120 {
		t.Fatalf("expected minimum preview size, got %dx%d", w, h)
	}
}
