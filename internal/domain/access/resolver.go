// Package access resuelve qué módulos del catálogo ve un usuario según el tipo
// de negocio de su empresa y su rol. Son funciones puras sobre datos estáticos:
// entradas desconocidas producen listas vacías, nunca errores.
package access

import (
	"sort"

	"github.com/jhoicas/hisaabb-api/internal/domain/catalog"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
)

// Resolver filtra el catálogo por tipo de negocio y rol.
type Resolver struct {
	catalog *catalog.Catalog
}

// NewResolver construye el resolver sobre un catálogo. Con nil usa catalog.Default().
func NewResolver(c *catalog.Catalog) *Resolver {
	if c == nil {
		c = catalog.Default()
	}
	return &Resolver{catalog: c}
}

// Catalog expone el catálogo de solo lectura sobre el que opera el resolver.
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

// ResolveAllModules módulos comunes y especializados visibles para (businessType, role),
// ordenados por prioridad ascendente. Los empates conservan el orden del catálogo.
func (r *Resolver) ResolveAllModules(businessType entity.BusinessType, role entity.Role) []entity.ModuleDescriptor {
	return filterSorted(r.catalog.Modules(), func(m entity.ModuleDescriptor) bool {
		return m.AppliesTo(businessType) && m.AllowsRole(role)
	})
}

// ResolveCommonModules módulos comunes visibles para el rol. No depende del tipo de negocio.
func (r *Resolver) ResolveCommonModules(role entity.Role) []entity.ModuleDescriptor {
	return filterSorted(r.catalog.Common(), func(m entity.ModuleDescriptor) bool {
		return m.AllowsRole(role)
	})
}

// ResolveSpecializedModules módulos especializados visibles para (businessType, role).
func (r *Resolver) ResolveSpecializedModules(businessType entity.BusinessType, role entity.Role) []entity.ModuleDescriptor {
	return filterSorted(r.catalog.Specialized(), func(m entity.ModuleDescriptor) bool {
		return m.AppliesTo(businessType) && m.AllowsRole(role)
	})
}

// HasModuleAccess true si el módulo existe y (businessType, role) satisface sus conjuntos.
func (r *Resolver) HasModuleAccess(moduleID string, businessType entity.BusinessType, role entity.Role) bool {
	m, ok := r.catalog.Module(moduleID)
	if !ok {
		return false
	}
	return m.AppliesTo(businessType) && m.AllowsRole(role)
}

func filterSorted(in []entity.ModuleDescriptor, keep func(entity.ModuleDescriptor) bool) []entity.ModuleDescriptor {
	out := make([]entity.ModuleDescriptor, 0, len(in))
	for _, m := range in {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}
