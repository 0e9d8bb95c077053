package presenter

import (
	"sync"
	"time"

	"github.com/soocke/facelog-go/domain/screen"
	"github.com/soocke/facelog-go/ui/model"
)

const noticeTTL = 4 * time.Second

// NoticeView shows a one-line transient message; "" clears it.
type NoticeView interface{ SetNotice(string) }

// NoticePresenter turns controller outcomes into transient notices.
type NoticePresenter struct {
	model *model.NoticeModel
	view  NoticeView

	mu      sync.Mutex
	pending []screen.Outcome
	shown   string
}

func NewNoticePresenter(m *model.NoticeModel, view NoticeView) *NoticePresenter {
	if m == nil {
		m = model.NewNoticeModel()
	}
	return &NoticePresenter{model: m, view: view}
}

// OnOutcome queues an outcome from the controller goroutine.
func (p *NoticePresenter) OnOutcome(o screen.Outcome) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, o)
	p.mu.Unlock()
}

func (p *NoticePresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	queued := p.pending
	p.pending = nil
	p.mu.Unlock()
	for _, o := range queued {
		p.model.Show(NoticeText(o), now, noticeTTL)
	}
	if text := p.model.Current(now); text != p.shown {
		p.shown = text
		p.view.SetNotice(text)
	}
}

// NoticeText is the user-facing message for an outcome.
func NoticeText(o screen.Outcome) string {
	switch o.Kind {
	case screen.OutcomePermissionDenied:
		return "Camera permission denied"
	case screen.OutcomeCaptureFailed:
		return "Could not take photo"
	case screen.OutcomeSaveFailed:
		return "Could not save photo, please retake"
	case screen.OutcomePersistFailed:
		switch o.Field {
		case screen.FieldGuides:
			return "Could not save alignment guides"
		default:
			return "Could not save camera settings"
		}
	case screen.OutcomePhotoSaved:
		return "Photo saved"
	default:
		return ""
	}
}
