package persistence

import (
	"context"
	"fmt"
	"log"
)

// Table writes the rows of one entity. K is the key struct and M the model;
// both are mapped to columns with the connection name mapper.
type Table[K any, M any] struct {
	SQLDao
	def Definition
}

func NewTable[K any, M any](dao SQLDao, def Definition) Table[K, M] {
	if len(def.Key) == 0 {
		panic(fmt.Sprintf("definition '%s' has no key columns", def.Name))
	}
	return Table[K, M]{
		SQLDao: dao,
		def:    def,
	}
}

// Create inserts the model and returns Created with the stored record,
// generated key included.
func (repo Table[K, M]) Create(ctx context.Context, model M) Outcome {
	params := repo.params(model)
	id, err := repo.insert(ctx, repo.def.InsertSQL(), repo.def.AutoKey, params)
	if err != nil {
		log.Printf("[SQL] Error while creating '%s': %s\n", repo.def.Name, err)
		return Failed(fmt.Errorf("cannot create %s: %w", repo.def.Name, err))
	}
	if repo.def.AutoKey != "" {
		params[repo.def.AutoKey] = id
	}
	var record M
	if err := repo.get(ctx, &record, repo.def.FindOneSQL(), params); err != nil {
		return Failed(fmt.Errorf("cannot read created %s: %w", repo.def.Name, err))
	}
	return Created(record)
}

func (repo Table[K, M]) Update(ctx context.Context, key K, model M) Outcome {
	affected, err := repo.exec(ctx, repo.def.UpdateSQL(), repo.params(model, key))
	if err != nil {
		log.Printf("[SQL] Error while updating '%s': %s\n", repo.def.Name, err)
		return Failed(fmt.Errorf("cannot update %s: %w", repo.def.Name, err))
	}
	if affected == 0 {
		return NotFound()
	}
	return NoContent()
}

func (repo Table[K, M]) Delete(ctx context.Context, key K) Outcome {
	affected, err := repo.exec(ctx, repo.def.DeleteSQL(), repo.params(key))
	if err != nil {
		log.Printf("[SQL] Error while deleting '%s': %s\n", repo.def.Name, err)
		return Failed(fmt.Errorf("cannot delete %s: %w", repo.def.Name, err))
	}
	if affected == 0 {
		return NotFound()
	}
	return NoContent()
}

// FindOne reads the projection of the row matching key.
func (repo Table[K, M]) FindOne(ctx context.Context, key K) (M, error) {
	var record M
	if err := repo.get(ctx, &record, repo.def.FindOneSQL(), repo.params(key)); err != nil {
		return record, fmt.Errorf("cannot find %s: %w", repo.def.Name, err)
	}
	return record, nil
}
