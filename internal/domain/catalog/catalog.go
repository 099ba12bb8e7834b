// Package catalog contiene el catálogo estático de módulos, KPIs y acciones
// rápidas. El catálogo se carga una vez por proceso desde un documento YAML
// embebido y es de solo lectura: todos los accesores devuelven copias.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultDocument []byte

// document forma del YAML. Roles solo existe para declarar anclas reutilizables.
type document struct {
	Roles        map[string][]entity.Role                     `yaml:"roles"`
	Common       []entity.ModuleDescriptor                    `yaml:"common"`
	Specialized  []entity.ModuleDescriptor                    `yaml:"specialized"`
	KPIs         []entity.KPIConfig                           `yaml:"kpis"`
	QuickActions map[entity.BusinessType][]entity.QuickAction `yaml:"quick_actions"`
}

// Catalog tabla inmutable de descriptores.
type Catalog struct {
	modules      []entity.ModuleDescriptor // common ++ specialized, en orden de declaración
	commonCount  int
	byID         map[string]int
	kpis         []entity.KPIConfig
	quickActions map[entity.BusinessType][]entity.QuickAction
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default devuelve el catálogo embebido. Un catálogo inválido es un error de
// build, por eso entra en pánico en lugar de devolver error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(defaultDocument)
		if err != nil {
			panic(fmt.Sprintf("catalog: documento embebido inválido: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load decodifica y valida un documento de catálogo.
func Load(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("catalog: documento vacío")
	}
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	c := &Catalog{
		byID:         make(map[string]int, len(doc.Common)+len(doc.Specialized)),
		quickActions: make(map[entity.BusinessType][]entity.QuickAction, len(doc.QuickActions)),
	}
	for _, m := range doc.Common {
		if len(m.BusinessTypes) > 0 {
			return nil, fmt.Errorf("catalog: el módulo común %q no debe declarar business_types", m.ID)
		}
		m.BusinessTypes = append([]entity.BusinessType(nil), entity.AllBusinessTypes...)
		m.IsSpecialized = false
		if err := c.addModule(m); err != nil {
			return nil, err
		}
	}
	c.commonCount = len(c.modules)
	for _, m := range doc.Specialized {
		m.IsSpecialized = true
		if err := c.addModule(m); err != nil {
			return nil, err
		}
	}

	kpiIDs := make(map[string]bool, len(doc.KPIs))
	for _, k := range doc.KPIs {
		if err := validateKPI(k); err != nil {
			return nil, err
		}
		if kpiIDs[k.ID] {
			return nil, fmt.Errorf("catalog: KPI duplicado %q", k.ID)
		}
		kpiIDs[k.ID] = true
		c.kpis = append(c.kpis, k)
	}

	for bt, actions := range doc.QuickActions {
		if !bt.Valid() {
			return nil, fmt.Errorf("catalog: acciones rápidas para tipo de negocio desconocido %q", bt)
		}
		seen := make(map[string]bool, len(actions))
		for _, a := range actions {
			if err := validateQuickAction(a); err != nil {
				return nil, fmt.Errorf("catalog: %s: %w", bt, err)
			}
			if seen[a.ID] {
				return nil, fmt.Errorf("catalog: acción rápida duplicada %q en %s", a.ID, bt)
			}
			seen[a.ID] = true
		}
		sorted := append([]entity.QuickAction(nil), actions...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })
		c.quickActions[bt] = sorted
	}
	return c, nil
}

func (c *Catalog) addModule(m entity.ModuleDescriptor) error {
	if err := validateModule(m); err != nil {
		return err
	}
	if _, dup := c.byID[m.ID]; dup {
		return fmt.Errorf("catalog: módulo duplicado %q", m.ID)
	}
	c.byID[m.ID] = len(c.modules)
	c.modules = append(c.modules, m)
	return nil
}

func validateModule(m entity.ModuleDescriptor) error {
	if m.ID == "" {
		return fmt.Errorf("catalog: módulo sin id (%q)", m.Title)
	}
	if m.Title == "" || m.Path == "" {
		return fmt.Errorf("catalog: módulo %q requiere title y path", m.ID)
	}
	if !m.Category.Valid() {
		return fmt.Errorf("catalog: módulo %q con categoría desconocida %q", m.ID, m.Category)
	}
	if len(m.BusinessTypes) == 0 {
		return fmt.Errorf("catalog: módulo %q sin business_types", m.ID)
	}
	for _, bt := range m.BusinessTypes {
		if !bt.Valid() {
			return fmt.Errorf("catalog: módulo %q con tipo de negocio desconocido %q", m.ID, bt)
		}
	}
	if len(m.AllowedRoles) == 0 {
		return fmt.Errorf("catalog: módulo %q sin allowed_roles", m.ID)
	}
	for _, r := range m.AllowedRoles {
		if !r.Valid() {
			return fmt.Errorf("catalog: módulo %q con rol desconocido %q", m.ID, r)
		}
	}
	return nil
}

func validateKPI(k entity.KPIConfig) error {
	if k.ID == "" || k.Title == "" {
		return fmt.Errorf("catalog: KPI requiere id y title (%q)", k.ID)
	}
	if !k.Category.Valid() {
		return fmt.Errorf("catalog: KPI %q con categoría desconocida %q", k.ID, k.Category)
	}
	if len(k.RequiredPermissions) == 0 || len(k.BusinessTypes) == 0 {
		return fmt.Errorf("catalog: KPI %q requiere required_permissions y business_types", k.ID)
	}
	for _, p := range k.RequiredPermissions {
		if !p.Valid() {
			return fmt.Errorf("catalog: KPI %q con permiso desconocido %q", k.ID, p)
		}
	}
	for _, bt := range k.BusinessTypes {
		if !bt.Valid() {
			return fmt.Errorf("catalog: KPI %q con tipo de negocio desconocido %q", k.ID, bt)
		}
	}
	return nil
}

func validateQuickAction(a entity.QuickAction) error {
	if a.ID == "" || a.Title == "" || a.Path == "" {
		return fmt.Errorf("acción rápida requiere id, title y path (%q)", a.ID)
	}
	if len(a.RequiredPermissions) == 0 {
		return fmt.Errorf("acción rápida %q sin required_permissions", a.ID)
	}
	for _, p := range a.RequiredPermissions {
		if !p.Valid() {
			return fmt.Errorf("acción rápida %q con permiso desconocido %q", a.ID, p)
		}
	}
	return nil
}

// Modules devuelve todos los módulos (comunes primero) en orden de declaración.
func (c *Catalog) Modules() []entity.ModuleDescriptor {
	return cloneModules(c.modules)
}

// Common devuelve los módulos comunes a todos los tipos de negocio.
func (c *Catalog) Common() []entity.ModuleDescriptor {
	return cloneModules(c.modules[:c.commonCount])
}

// Specialized devuelve los módulos específicos de algún tipo de negocio.
func (c *Catalog) Specialized() []entity.ModuleDescriptor {
	return cloneModules(c.modules[c.commonCount:])
}

// Module busca un módulo por id.
func (c *Catalog) Module(id string) (entity.ModuleDescriptor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return entity.ModuleDescriptor{}, false
	}
	return c.modules[i].Clone(), true
}

// KPIs devuelve el catálogo de KPIs en orden de declaración.
func (c *Catalog) KPIs() []entity.KPIConfig {
	out := make([]entity.KPIConfig, len(c.kpis))
	for i, k := range c.kpis {
		out[i] = k.Clone()
	}
	return out
}

// QuickActions devuelve las acciones rápidas del tipo de negocio ordenadas por prioridad.
// Un tipo sin entrada en la tabla no tiene acciones rápidas.
func (c *Catalog) QuickActions(bt entity.BusinessType) []entity.QuickAction {
	actions := c.quickActions[bt]
	out := make([]entity.QuickAction, len(actions))
	for i, a := range actions {
		out[i] = a.Clone()
	}
	return out
}

func cloneModules(in []entity.ModuleDescriptor) []entity.ModuleDescriptor {
	out := make([]entity.ModuleDescriptor, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}
