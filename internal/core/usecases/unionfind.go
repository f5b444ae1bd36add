// internal/core/usecases/unionfind.go
package usecases

// unionFind agrupa índices de un bucket en clases de equivalencia con
// clausura transitiva: si A≡B y B≡C, los tres colapsan a una sola clase sin
// importar el orden de recorrido. Arena de índices, sin enlaces mutables
// sobre los records.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range u.parent {
		u.parent[i] = i
		u.size[i] = 1
	}
	return u
}

// find retorna el representante de x, con path compression.
func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union une las clases de a y b (union by size).
func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
}

// same indica si a y b ya pertenecen a la misma clase.
func (u *unionFind) same(a, b int) bool {
	return u.find(a) == u.find(b)
}

// groups retorna las clases de equivalencia: miembros en orden ascendente,
// clases ordenadas por su primer miembro. Determinista para una misma entrada.
func (u *unionFind) groups() [][]int {
	byRoot := make(map[int][]int)
	var order []int
	for i := range u.parent {
		root := u.find(i)
		if _, seen := byRoot[root]; !seen {
			order = append(order, root)
		}
		byRoot[root] = append(byRoot[root], i)
	}

	out := make([][]int, 0, len(order))
	for _, root := range order {
		out = append(out, byRoot[root])
	}
	return out
}
