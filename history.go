package pso

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

const (
	// TblParticles is the name of the sql database table that contains
	// positions, objective values and personal best values for every
	// particle at each iteration.
	TblParticles = "psoparticles"
	// TblBest is the name of the sql database table that contains the best
	// position for the entire swarm at each iteration.
	TblBest = "psobest"
)

// History records swarm state to a sql database, one transaction per call
// to Record.  Rows are keyed by the history's run id so several runs can
// share a database.  Iteration 0 is the state right after New.
type History struct {
	Db  *sql.DB
	Run string
	dim int
}

// NewHistory creates the history tables in db if they don't exist yet.
// dim must match the dimensionality of the swarms being recorded.
func NewHistory(db *sql.DB, dim int) (*History, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("history dimension %v must be positive: %w", dim, ErrInvalidConfiguration)
	}
	h := &History{Db: db, Run: uuid.New().String(), dim: dim}

	s := "CREATE TABLE IF NOT EXISTS " + TblParticles + " (run TEXT, iter INTEGER, particle INTEGER, val REAL, best REAL"
	s += h.xdbsql("define")
	s += ");"
	if _, err := db.Exec(s); err != nil {
		return nil, fmt.Errorf("create %v table: %w", TblParticles, err)
	}

	s = "CREATE TABLE IF NOT EXISTS " + TblBest + " (run TEXT, iter INTEGER, val REAL"
	s += h.xdbsql("define")
	s += ");"
	if _, err := db.Exec(s); err != nil {
		return nil, fmt.Errorf("create %v table: %w", TblBest, err)
	}
	return h, nil
}

// Record writes the current state of s.
func (h *History) Record(s *Swarm) (err error) {
	if s.dim != h.dim {
		return fmt.Errorf("history has %v dimensions, swarm has %v: %w", h.dim, s.dim, ErrDimensionMismatch)
	}

	tx, err := h.Db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	s0 := "INSERT INTO " + TblParticles + " (run,iter,particle,val,best" + h.xdbsql("x") + ") VALUES (?,?,?,?,?" + h.xdbsql("?") + ");"
	for i := 0; i < s.size; i++ {
		args := []interface{}{h.Run, s.ticks, i, rastrigin(s.pos(i)), rastrigin(s.best(i))}
		args = append(args, pos2iface(s.pos(i))...)
		if _, err = tx.Exec(s0, args...); err != nil {
			return err
		}
	}

	s1 := "INSERT INTO " + TblBest + " (run,iter,val" + h.xdbsql("x") + ") VALUES (?,?,?" + h.xdbsql("?") + ");"
	args := []interface{}{h.Run, s.ticks, s.gval}
	args = append(args, pos2iface(s.g)...)
	_, err = tx.Exec(s1, args...)
	return err
}

func (h *History) xdbsql(op string) string {
	s := ""
	for i := 0; i < h.dim; i++ {
		if op == "?" {
			s += ",?"
		} else if op == "define" {
			s += fmt.Sprintf(",x%v REAL", i)
		} else if op == "x" {
			s += fmt.Sprintf(",x%v", i)
		} else {
			panic("invalid db op " + op)
		}
	}
	return s
}

func pos2iface(pos []float64) []interface{} {
	iface := make([]interface{}, 0, len(pos))
	for _, v := range pos {
		iface = append(iface, v)
	}
	return iface
}
