package geo

// Cluster groups items into proximity clusters. Two items end up in the same
// cluster when a chain of items connects them in which every hop is at most
// radiusMeters long (single-link closure).
//
// Clusters are ordered by the input position of their first member and
// members keep their input order.
func Cluster[T any](items []T, radiusMeters float64, at func(T) Point) [][]T {
	if len(items) == 0 {
		return [][]T{}
	}

	points := make([]Point, len(items))
	for i, item := range items {
		points[i] = at(item)
	}

	uf := newUnionFind(len(items))
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if HaversineMeters(points[i], points[j]) <= radiusMeters {
				uf.union(i, j)
			}
		}
	}

	// Map each root to its output slot in order of first appearance.
	slot := make(map[int]int)
	var clusters [][]T
	for i, item := range items {
		root := uf.find(i)
		idx, ok := slot[root]
		if !ok {
			idx = len(clusters)
			slot[root] = idx
			clusters = append(clusters, nil)
		}
		clusters[idx] = append(clusters[idx], item)
	}

	return clusters
}

// ClusterPoints is Cluster over bare points.
func ClusterPoints(points []Point, radiusMeters float64) [][]Point {
	return Cluster(points, radiusMeters, func(p Point) Point { return p })
}

// unionFind is a disjoint-set forest with path halving and union by size.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}
