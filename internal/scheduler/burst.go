package scheduler

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"
)

// Platform 表示社交平台，不同平台的算法对发布密度的耐受度不同。
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformLinkedIn  Platform = "linkedin"
)

// BurstWindowMinutes 返回该平台一次爆发投放的总时长（分钟）。
// 未知平台按 15 分钟处理。
func (p Platform) BurstWindowMinutes() int {
	switch p {
	case PlatformTwitter:
		return 10
	case PlatformInstagram:
		return 15
	case PlatformTikTok:
		return 20
	case PlatformLinkedIn:
		return 30
	default:
		return 15
	}
}

// SocialBurst 把一批社交帖子压缩到锚点事件前的一小段时间内等间隔发出，
// 用短时间内的密集互动触发平台的推荐算法。
// 所有帖子共享同一个批次号，方便整体取消或改期。
func (s *Scheduler) SocialBurst(actionIDs []int64, anchor time.Time, preAnchorMinutes int, platform Platform) ([]*domain.ScheduledAction, error) {
	if preAnchorMinutes < 0 {
		return nil, fmt.Errorf("%w: 提前量不能为负数", ErrInvalidParameter)
	}

	scheduled := make([]*domain.ScheduledAction, 0, len(actionIDs))
	if len(actionIDs) == 0 {
		return scheduled, nil
	}

	burstStart := anchor.Add(-time.Duration(preAnchorMinutes) * time.Minute)
	interval := float64(platform.BurstWindowMinutes()) / float64(len(actionIDs))
	batchID := fmt.Sprintf("social-burst-%s", anchor.Format(time.RFC3339))

	for i, id := range actionIDs {
		postAt := burstStart.Add(time.Duration(interval * float64(i) * float64(time.Minute)))
		scheduled = append(scheduled, &domain.ScheduledAction{
			ActionID:       id,
			ActionType:     domain.ActionSocialPost,
			ScheduledStart: postAt,
			ScheduledEnd:   postAt.Add(5 * time.Minute),
			Priority:       1,
			BatchID:        batchID,
			Notes:          fmt.Sprintf("%s 爆发投放，第 %d/%d 帖", platform, i+1, len(actionIDs)),
		})
	}

	return scheduled, nil
}
