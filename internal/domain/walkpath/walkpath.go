// Package walkpath holds the static graph of navigable points in a scene
// and the shortest-path search used to route actors between them.
package walkpath

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrNoPath is returned when two points are not connected.
	ErrNoPath = errors.New("walkpath: no path")
	// ErrUnknownPoint is returned when a point id is not in the graph.
	ErrUnknownPoint = errors.New("walkpath: unknown point")
)

// Point is a single navigable location
type Point struct {
	ID   string
	X, Y float64
}

// Route is an ordered list of point ids from source to destination
type Route []string

// Hop is one leg of a route: the point reached and its coordinates
type Hop struct {
	Point string
	X, Y  float64
}

// Graph is a weighted undirected point graph.
// It is built once per scene and never mutated afterwards.
type Graph struct {
	points map[string]Point
	ids    []string // sorted, for deterministic iteration
	edges  map[string]map[string]float64
}

// New builds a graph from point coordinates and neighbor lists.
// Neighbor lists do not need to be symmetric; every edge is added both ways.
func New(points map[string][2]float64, neighbors map[string][]string) (*Graph, error) {
	g := &Graph{
		points: make(map[string]Point, len(points)),
		ids:    make([]string, 0, len(points)),
		edges:  make(map[string]map[string]float64, len(points)),
	}
	for id, xy := range points {
		g.points[id] = Point{ID: id, X: xy[0], Y: xy[1]}
		g.ids = append(g.ids, id)
		g.edges[id] = make(map[string]float64)
	}
	sort.Strings(g.ids)

	for from, list := range neighbors {
		a, ok := g.points[from]
		if !ok {
			return nil, fmt.Errorf("edge from %q: %w", from, ErrUnknownPoint)
		}
		for _, to := range list {
			b, ok := g.points[to]
			if !ok {
				return nil, fmt.Errorf("edge %q -> %q: %w", from, to, ErrUnknownPoint)
			}
			if from == to {
				continue
			}
			w := math.Hypot(a.X-b.X, a.Y-b.Y)
			g.edges[from][to] = w
			g.edges[to][from] = w
		}
	}
	return g, nil
}

// Len returns the number of points
func (g *Graph) Len() int {
	return len(g.ids)
}

// Point returns the point with the given id
func (g *Graph) Point(id string) (Point, bool) {
	p, ok := g.points[id]
	return p, ok
}

// Neighbors returns the sorted neighbor ids of a point
func (g *Graph) Neighbors(id string) []string {
	out := make([]string, 0, len(g.edges[id]))
	for n := range g.edges[id] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Weight returns the edge weight between two adjacent points
func (g *Graph) Weight(a, b string) (float64, bool) {
	w, ok := g.edges[a][b]
	return w, ok
}

// Nearest returns the point closest to (x, y) that is not excluded.
// Ties go to the smallest id. ok is false when every point is excluded.
func (g *Graph) Nearest(x, y float64, exclude map[string]struct{}) (string, bool) {
	best := ""
	bestDist := math.Inf(1)
	for _, id := range g.ids {
		if _, skip := exclude[id]; skip {
			continue
		}
		p := g.points[id]
		d := math.Hypot(p.X-x, p.Y-y)
		if d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, best != ""
}

// ShortestRoute runs Dijkstra between two points.
func (g *Graph) ShortestRoute(from, to string) (Route, error) {
	if _, ok := g.points[from]; !ok {
		return nil, fmt.Errorf("route from %q: %w", from, ErrUnknownPoint)
	}
	if _, ok := g.points[to]; !ok {
		return nil, fmt.Errorf("route to %q: %w", to, ErrUnknownPoint)
	}
	if from == to {
		return Route{from}, nil
	}

	dist := map[string]float64{from: 0}
	prev := make(map[string]string)
	done := make(map[string]bool, len(g.ids))

	pq := &queue{{id: from, dist: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(item)
		if done[cur.id] {
			continue
		}
		done[cur.id] = true
		if cur.id == to {
			break
		}
		for _, n := range g.Neighbors(cur.id) {
			if done[n] {
				continue
			}
			nd := cur.dist + g.edges[cur.id][n]
			if old, seen := dist[n]; !seen || nd < old {
				dist[n] = nd
				prev[n] = cur.id
				heap.Push(pq, item{id: n, dist: nd})
			}
		}
	}

	if !done[to] {
		return nil, fmt.Errorf("%q -> %q: %w", from, to, ErrNoPath)
	}

	var route Route
	for at := to; ; at = prev[at] {
		route = append(route, at)
		if at == from {
			break
		}
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route, nil
}

// Cost returns the summed edge weight of a route, or +Inf if any leg is not an edge
func (g *Graph) Cost(r Route) float64 {
	total := 0.0
	for i := 1; i < len(r); i++ {
		w, ok := g.edges[r[i-1]][r[i]]
		if !ok {
			return math.Inf(1)
		}
		total += w
	}
	return total
}

// ClosestReachable finds the point nearest to (x, y) that has a route from
// the given point. Unreachable candidates are excluded one at a time, so the
// search is bounded by the number of points.
func (g *Graph) ClosestReachable(from string, x, y float64) (string, bool) {
	if _, ok := g.points[from]; !ok {
		return "", false
	}
	exclude := make(map[string]struct{})
	for attempt := 0; attempt < len(g.ids); attempt++ {
		dest, ok := g.Nearest(x, y, exclude)
		if !ok {
			return "", false
		}
		if _, err := g.ShortestRoute(from, dest); err == nil {
			return dest, true
		}
		exclude[dest] = struct{}{}
	}
	return "", false
}

// MoveSequence returns the route between two points and the hops an actor
// walks along it. The starting point is not a hop.
func (g *Graph) MoveSequence(from, to string) (Route, []Hop, error) {
	route, err := g.ShortestRoute(from, to)
	if err != nil {
		return nil, nil, err
	}
	hops := make([]Hop, 0, len(route)-1)
	for _, id := range route[1:] {
		p := g.points[id]
		hops = append(hops, Hop{Point: id, X: p.X, Y: p.Y})
	}
	return route, hops, nil
}

// Info returns the graph in its load format
func (g *Graph) Info() (map[string][2]float64, map[string][]string) {
	points := make(map[string][2]float64, len(g.points))
	neighbors := make(map[string][]string, len(g.points))
	for _, id := range g.ids {
		p := g.points[id]
		points[id] = [2]float64{p.X, p.Y}
		neighbors[id] = g.Neighbors(id)
	}
	return points, neighbors
}

type item struct {
	id   string
	dist float64
}

// queue is a min-heap on distance, ties broken by id
type queue []item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].dist == q[j].dist {
		return q[i].id < q[j].id
	}
	return q[i].dist < q[j].dist
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any) { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
