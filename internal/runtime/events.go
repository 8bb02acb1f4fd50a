package runtime

import (
	"context"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

func (n *Navigator) base(t domain.EventType, s *domain.State) domain.EventBase {
	return domain.EventBase{
		Timestamp: n.now(),
		Type:      t,
		SessionID: s.SessionID,
		Category:  s.Category,
	}
}

func (n *Navigator) emitNodeEnter(ctx context.Context, s *domain.State, back bool) {
	if n.hooks.OnNodeEnter == nil {
		return
	}
	n.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: n.base(domain.EventNodeEnter, s),
		NodeID:    s.CurrentNodeID,
		Back:      back,
	})
}

func (n *Navigator) emitNodeLeave(ctx context.Context, s *domain.State, back bool) {
	if n.hooks.OnNodeLeave == nil {
		return
	}
	n.hooks.OnNodeLeave(ctx, &domain.NodeEvent{
		EventBase: n.base(domain.EventNodeLeave, s),
		NodeID:    s.CurrentNodeID,
		Back:      back,
	})
}

func (n *Navigator) emitResult(ctx context.Context, s *domain.State) {
	if n.hooks.OnResult == nil {
		return
	}
	n.hooks.OnResult(ctx, &domain.ResultEvent{
		EventBase: n.base(domain.EventResult, s),
		NodeID:    s.CurrentNodeID,
		Diagnosis: s.Result.Diagnosis,
		Severity:  s.Result.Severity,
	})
}

func (n *Navigator) emitExit(ctx context.Context, s *domain.State, reason string) {
	if n.hooks.OnExit == nil {
		return
	}
	n.hooks.OnExit(ctx, &domain.ExitEvent{
		EventBase: n.base(domain.EventExit, s),
		Reason:    reason,
	})
}
