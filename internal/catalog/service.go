package catalog

import (
	"context"
	"fmt"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/game"
	"github.com/lootledger/engine/internal/logger"
)

// Service exposes the admin catalog operations: master item and loot
// table lifecycle. Edits never reach item instances already drawn;
// instances copied their values at draw time.
type Service interface {
	CreateItem(ctx context.Context, def ItemDef) error
	UpdateItem(ctx context.Context, def ItemDef) error
	DeleteItem(ctx context.Context, name string) error
	CreateTable(ctx context.Context, name string, drawCost int) error
	DeleteTable(ctx context.Context, name string) error
	AddTableEntry(ctx context.Context, table, item string, weight int) error
	RemoveTableEntry(ctx context.Context, table, item string) error
}

type service struct {
	session  *game.Session
	resolver *Resolver
}

// NewService creates the catalog admin service.
func NewService(session *game.Session, resolver *Resolver) Service {
	return &service{session: session, resolver: resolver}
}

func (s *service) CreateItem(ctx context.Context, def ItemDef) error {
	log := logger.FromContext(ctx)

	return s.session.Update(func(g *domain.GameState) error {
		if _, ok := g.MasterItem(def.Name); ok {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateItem, def.Name)
		}
		qty := def.Quantity
		if qty <= 0 {
			qty = 1
		}
		g.Items = append(g.Items, &domain.MasterItem{
			Name:        def.Name,
			Kind:        domain.ItemKind(def.Kind),
			Value:       def.Value,
			Price:       def.Price,
			Ingredients: def.Ingredients,
			Quantity:    qty,
		})
		log.Info("Master item created", "item", def.Name, "kind", def.Kind)
		return nil
	})
}

func (s *service) UpdateItem(ctx context.Context, def ItemDef) error {
	log := logger.FromContext(ctx)

	return s.session.Update(func(g *domain.GameState) error {
		master, ok := g.MasterItem(def.Name)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, def.Name)
		}
		master.Kind = domain.ItemKind(def.Kind)
		master.Value = def.Value
		master.Price = def.Price
		master.Ingredients = def.Ingredients
		if def.Quantity > 0 {
			master.Quantity = def.Quantity
		}
		s.resolver.Invalidate(def.Name)
		log.Info("Master item updated", "item", def.Name)
		return nil
	})
}

func (s *service) DeleteItem(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	return s.session.Update(func(g *domain.GameState) error {
		key := domain.Key(name)
		for i, master := range g.Items {
			if domain.Key(master.Name) == key {
				g.Items = append(g.Items[:i], g.Items[i+1:]...)
				s.resolver.Invalidate(name)
				log.Info("Master item deleted", "item", name)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, name)
	})
}

func (s *service) CreateTable(ctx context.Context, name string, drawCost int) error {
	log := logger.FromContext(ctx)

	if drawCost < 0 {
		return fmt.Errorf("%w: draw cost must not be negative", domain.ErrInvalidConfiguration)
	}
	return s.session.Update(func(g *domain.GameState) error {
		if _, ok := g.Table(name); ok {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTable, name)
		}
		g.Tables[domain.Key(name)] = &domain.LootTable{Name: name, DrawCost: drawCost}
		log.Info("Loot table created", "table", name, "drawCost", drawCost)
		return nil
	})
}

func (s *service) DeleteTable(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	return s.session.Update(func(g *domain.GameState) error {
		if _, ok := g.Table(name); !ok {
			return fmt.Errorf("%w: %s", domain.ErrTableNotFound, name)
		}
		delete(g.Tables, domain.Key(name))
		log.Info("Loot table deleted", "table", name)
		return nil
	})
}

func (s *service) AddTableEntry(ctx context.Context, table, item string, weight int) error {
	log := logger.FromContext(ctx)

	if weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", domain.ErrInvalidConfiguration)
	}
	return s.session.Update(func(g *domain.GameState) error {
		t, ok := g.Table(table)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
		}
		master, ok := g.MasterItem(item)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, item)
		}
		t.Items = append(t.Items, domain.NewTemplate(master, weight))
		log.Info("Table entry added", "table", table, "item", master.Name, "weight", weight)
		return nil
	})
}

func (s *service) RemoveTableEntry(ctx context.Context, table, item string) error {
	log := logger.FromContext(ctx)

	return s.session.Update(func(g *domain.GameState) error {
		t, ok := g.Table(table)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
		}
		key := domain.Key(item)
		for i, entry := range t.Items {
			if domain.Key(entry.Name) == key {
				t.Items = append(t.Items[:i], t.Items[i+1:]...)
				log.Info("Table entry removed", "table", table, "item", item)
				return nil
			}
		}
		return fmt.Errorf("%w: %s not in table %s", domain.ErrItemNotFound, item, table)
	})
}
