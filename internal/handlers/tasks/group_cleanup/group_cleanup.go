package group_cleanup

import (
	"context"
	"time"

	"tracking/pkg/logger"
)

type Hub interface {
	CleanupEmptyGroups() int
}

// GroupCleanup периодическая уборка опустевших broadcast-групп, чтобы мапа
// хаба не росла на брошенных задачах.
type GroupCleanup struct {
	log      logger.Logger
	hub      Hub
	interval time.Duration
}

func NewGroupCleanup(log logger.Logger, hub Hub, interval time.Duration) *GroupCleanup {
	return &GroupCleanup{
		log:      log,
		hub:      hub,
		interval: interval,
	}
}

func (g *GroupCleanup) TTL() time.Duration {
	return g.interval
}

func (g *GroupCleanup) Do(_ context.Context) error {
	removed := g.hub.CleanupEmptyGroups()

	if removed > 0 {
		g.log.With(
			logger.NewField("removed_groups", removed),
		).Info("broadcast group cleanup")
	}

	return nil
}

func (g *GroupCleanup) Info() string {
	return "broadcast group cleanup"
}
