// Package loot implements the weighted draw engine: table sampling with
// replacement, equipment rarity rolls, modifier-adjusted draw costs, and
// the one-shot consumable effect hooks.
package loot

import (
	"context"
	"fmt"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/game"
	"github.com/lootledger/engine/internal/inventory"
	"github.com/lootledger/engine/internal/logger"
	"github.com/lootledger/engine/internal/metrics"
	"github.com/lootledger/engine/internal/modifier"
	"github.com/lootledger/engine/internal/utils"
)

// DrawResult reports one completed draw operation.
type DrawResult struct {
	Items      []*domain.Item `json:"items"`
	Cost       int            `json:"cost"`
	FreeDraws  int            `json:"free_draws"`
	Doubled    bool           `json:"doubled"`
	TotalValue int            `json:"total_value"`
	Balance    int            `json:"balance"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// TableOdds is one table entry with its effective drop probability.
type TableOdds struct {
	Item   string  `json:"item"`
	Weight int     `json:"weight"`
	Chance float64 `json:"chance"`
}

// TableSummary describes one table for listing endpoints.
type TableSummary struct {
	Name     string `json:"name"`
	DrawCost int    `json:"draw_cost"`
	Entries  int    `json:"entries"`
}

// Service defines the draw engine interface.
type Service interface {
	Draw(ctx context.Context, playerName, tableName string, count int) (*DrawResult, error)
	ListTables(ctx context.Context) ([]TableSummary, error)
	Odds(ctx context.Context, tableName string) ([]TableOdds, error)
}

type service struct {
	session *game.Session
}

// NewService creates the draw engine over a game session.
func NewService(session *game.Session) Service {
	return &service{session: session}
}

// drawEffects is the set of one-shot consumable effects consumed by a
// single draw operation. At most one of each kind fires per draw.
type drawEffects struct {
	double *domain.ActiveEffect
	trash  *domain.ActiveEffect
	ticket *domain.ActiveEffect
}

// takeEffects removes the first queued effect of each kind from the
// player. Remaining same-kind effects stay queued for later draws.
func takeEffects(p *domain.Player) drawEffects {
	var eff drawEffects
	kept := p.Effects[:0]
	for i := range p.Effects {
		e := p.Effects[i]
		switch {
		case e.Kind == domain.ConsumableDoubleNextDraw && eff.double == nil:
			eff.double = &e
		case e.Kind == domain.ConsumableTrashToTreasure && eff.trash == nil:
			eff.trash = &e
		case e.Kind == domain.ConsumableFreeDrawTicket && eff.ticket == nil:
			eff.ticket = &e
		default:
			kept = append(kept, e)
		}
	}
	p.Effects = kept
	return eff
}

func (s *service) Draw(ctx context.Context, playerName, tableName string, count int) (*DrawResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDrawCalled, "player", playerName, "table", tableName, "count", count)

	if count < 1 {
		return nil, fmt.Errorf("%w: draw count must be at least 1", domain.ErrInvalidConfiguration)
	}

	var result *DrawResult
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		table, ok := g.Table(tableName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTableNotFound, tableName)
		}
		if len(table.Items) == 0 {
			return fmt.Errorf("%w: %s", domain.ErrEmptyTable, table.Name)
		}
		if !table.Drawable() {
			return fmt.Errorf("%w: table %s has a non-positive weight", domain.ErrInvalidConfiguration, table.Name)
		}

		mods := modifier.Aggregate(player)
		costPerDraw := mods.DrawCost.ReduceCost(table.DrawCost)
		totalCost := costPerDraw * count

		// Peek at the effect queue before committing to anything: with no
		// free ticket to fall back on, an unaffordable draw must fail
		// without consuming queued effects.
		hasTicket := false
		for _, e := range player.Effects {
			if e.Kind == domain.ConsumableFreeDrawTicket {
				hasTicket = true
				break
			}
		}
		if player.Currency < totalCost && !hasTicket {
			return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, totalCost, player.Currency)
		}

		eff := takeEffects(player)
		result = &DrawResult{Doubled: eff.double != nil}

		// Free ticket draws fire first, from the ticket's bound table,
		// bypassing the draw cost entirely. They are part of this draw,
		// so a queued doubling covers them too.
		if eff.ticket != nil {
			ticketTable, ok := g.Table(eff.ticket.Table)
			if !ok || !ticketTable.Drawable() {
				log.Warn(LogMsgTicketTableGone, "table", eff.ticket.Table)
				result.Warnings = append(result.Warnings, WarnTicketTableGone)
			} else {
				draws := eff.ticket.Value
				if draws < 1 {
					draws = 1
				}
				for i := 0; i < draws; i++ {
					item, err := s.drawOne(g, ticketTable, -1, mods, eff.double != nil)
					if err != nil {
						return err
					}
					result.TotalValue += item.Value
					result.Items = append(result.Items, item)
					inventory.Add(player, item)
				}
				result.FreeDraws = draws
				metrics.ItemsDrawn.WithLabelValues(ticketTable.Name).Add(float64(draws))
			}
		}

		if player.Currency < totalCost {
			// Only reachable when a ticket fired; the paid part degrades
			// to a no-op instead of unwinding the free draws. Effects
			// that had nothing to act on go back on the queue: trash
			// only shapes the paid table, and a doubling is only spent
			// if the ticket produced items for it to double.
			var requeue []domain.ActiveEffect
			if eff.double != nil && len(result.Items) == 0 {
				requeue = append(requeue, *eff.double)
				result.Doubled = false
			}
			if eff.trash != nil {
				requeue = append(requeue, *eff.trash)
			}
			if len(requeue) > 0 {
				player.Effects = append(requeue, player.Effects...)
			}
			result.Warnings = append(result.Warnings, WarnPaidDrawSkipped)
			result.Balance = player.Currency
			return nil
		}

		// Trash-to-treasure excludes the single highest-weight entry for
		// this one operation. A single-entry table has nothing left to
		// draw, so the exclusion is skipped (the effect is still spent).
		excluded := -1
		if eff.trash != nil {
			if len(table.Items) > 1 {
				excluded = table.HighestWeightIndex()
			} else {
				log.Warn(LogMsgTrashPoolEmptied, "table", table.Name)
				result.Warnings = append(result.Warnings, WarnTrashSingleEntry)
			}
		}

		player.Currency -= totalCost
		result.Cost = totalCost

		for i := 0; i < count; i++ {
			item, err := s.drawOne(g, table, excluded, mods, eff.double != nil)
			if err != nil {
				return err
			}
			result.TotalValue += item.Value
			result.Items = append(result.Items, item)
			inventory.Add(player, item)
		}
		result.Balance = player.Currency

		metrics.DrawsPerformed.WithLabelValues(table.Name).Inc()
		metrics.ItemsDrawn.WithLabelValues(table.Name).Add(float64(count))
		metrics.MoneySpent.WithLabelValues(metrics.SourceDraw).Add(float64(totalCost))
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgDrawComplete,
		"player", playerName,
		"table", tableName,
		"items", len(result.Items),
		"cost", result.Cost,
		"totalValue", result.TotalValue)
	return result, nil
}

// drawOne samples one template from the table (skipping the excluded
// index, if any), deep-copies it, rolls equipment rarity, and applies
// the per-item double-quantity chance plus the whole-draw doubling.
func (s *service) drawOne(g *domain.GameState, table *domain.LootTable, excluded int, mods modifier.Set, doubleAll bool) (*domain.Item, error) {
	weights := make([]int, len(table.Items))
	for i, tmpl := range table.Items {
		if i == excluded {
			continue
		}
		weights[i] = tmpl.Weight
	}

	idx, err := utils.WeightedIndex(weights, s.session.Rand)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidConfiguration, err)
	}

	item := table.Items[idx].Clone()
	item.Weight = 0

	if item.Kind == domain.KindEquipment && item.Rarity == "" {
		tier, err := g.Rarity.Roll(s.session.Rand)
		if err != nil {
			return nil, err
		}
		item.Rarity = tier.Name
	}

	if mods.DoubleQuantityChance > 0 && s.session.Rand()*100 < mods.DoubleQuantityChance {
		item.Quantity *= 2
		item.Value *= 2
	}
	if doubleAll {
		item.Quantity *= 2
		item.Value *= 2
	}
	return item, nil
}

func (s *service) ListTables(ctx context.Context) ([]TableSummary, error) {
	var summaries []TableSummary
	err := s.session.View(func(g *domain.GameState) error {
		for _, table := range g.Tables {
			summaries = append(summaries, TableSummary{
				Name:     table.Name,
				DrawCost: table.DrawCost,
				Entries:  len(table.Items),
			})
		}
		return nil
	})
	return summaries, err
}

func (s *service) Odds(ctx context.Context, tableName string) ([]TableOdds, error) {
	var odds []TableOdds
	err := s.session.View(func(g *domain.GameState) error {
		table, ok := g.Table(tableName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTableNotFound, tableName)
		}
		total := table.TotalWeight()
		if total <= 0 {
			return fmt.Errorf("%w: table %s has no positive weight", domain.ErrInvalidConfiguration, table.Name)
		}
		for _, tmpl := range table.Items {
			odds = append(odds, TableOdds{
				Item:   tmpl.Name,
				Weight: tmpl.Weight,
				Chance: float64(tmpl.Weight) / float64(total),
			})
		}
		return nil
	})
	return odds, err
}
