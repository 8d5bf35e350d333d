package cache

import (
	"sort"
	"sync"

	"github.com/hexclash/tankagent/internal/hex"
)

// Source tells who reported a sighting.
type Source string

const (
	SourceSelf Source = "self"
	SourcePeer Source = "peer"
)

// Sighting is the last known position of an enemy team, relative to the reporting unit.
type Sighting struct {
	Team   byte
	Cell   hex.Coordinate
	Round  int
	Source Source
}

// EnemyCache keeps the latest sighting per enemy team colour.
type EnemyCache struct {
	m         sync.Mutex
	sightings map[byte]Sighting
}

func NewEnemyCache() *EnemyCache {
	return &EnemyCache{
		sightings: make(map[byte]Sighting),
	}
}

// Record stores s unless a sighting from a later round is already known. Own sightings win over
// peer sightings from the same round.
func (c *EnemyCache) Record(s Sighting) {
	c.m.Lock()
	defer c.m.Unlock()
	prev, ok := c.sightings[s.Team]
	if ok && (prev.Round > s.Round || (prev.Round == s.Round && prev.Source == SourceSelf && s.Source == SourcePeer)) {
		return
	}
	c.sightings[s.Team] = s
}

// RecordCells records every team-coloured cell of a scan.
func (c *EnemyCache) RecordCells(cells []hex.Coordinate, round int, src Source) int {
	n := 0
	for _, cell := range cells {
		if !hex.IsTeamColor(cell.Occupant) {
			continue
		}
		c.Record(Sighting{Team: cell.Occupant, Cell: cell, Round: round, Source: src})
		n++
	}
	return n
}

func (c *EnemyCache) Get(team byte) (Sighting, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	s, ok := c.sightings[team]
	return s, ok
}

// All returns every sighting ordered by team letter.
func (c *EnemyCache) All() []Sighting {
	c.m.Lock()
	defer c.m.Unlock()
	out := make([]Sighting, 0, len(c.sightings))
	for _, s := range c.sightings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out
}

func (c *EnemyCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.sightings)
}

func (c *EnemyCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.sightings = make(map[byte]Sighting)
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
