// Package netmirror reflects the sync core's entity table into a donburi
// world so ebiten systems can draw it.
package netmirror

import (
	"log"

	"github.com/automoto/netsync/shared/netcomponents"
	"github.com/automoto/netsync/shared/netconfig"
	"github.com/automoto/netsync/tags"
	"github.com/yohamta/donburi"
)

// Handles maps server entity ids to their mirrored donburi entities.
type Handles map[netconfig.EntityID]donburi.Entity

// Mirror implements the position and lifecycle sinks over a donburi world.
// Like the sync core, it belongs to the frame loop.
type Mirror struct {
	world   donburi.World
	handles Handles

	local    netconfig.EntityID
	hasLocal bool
}

// New creates a mirror writing into world. handles may carry entities from a
// previous mirror over the same world; nil starts empty.
func New(world donburi.World, handles Handles) *Mirror {
	if handles == nil {
		handles = make(Handles)
	}
	return &Mirror{world: world, handles: handles}
}

// Handles returns the id -> entity table.
func (m *Mirror) Handles() Handles {
	return m.handles
}

// EntityAppeared creates the mirrored entity for id.
func (m *Mirror) EntityAppeared(id netconfig.EntityID) {
	if _, ok := m.entry(id); ok {
		return
	}

	role := tags.RemotePlayer
	if m.hasLocal && id == m.local {
		role = tags.LocalPlayer
	}
	entity := m.world.Create(netcomponents.NetEntity, netcomponents.RenderTransform, role)
	entry := m.world.Entry(entity)
	netcomponents.NetEntity.SetValue(entry, netcomponents.NetEntityData{ID: id})
	m.handles[id] = entity
}

// EntityDisappeared removes the mirrored entity for id.
func (m *Mirror) EntityDisappeared(id netconfig.EntityID) {
	entity, ok := m.handles[id]
	if !ok {
		return
	}
	delete(m.handles, id)
	if m.world.Valid(entity) {
		m.world.Remove(entity)
	}
}

// SetPosition writes the render transform of id. Unknown ids are ignored.
func (m *Mirror) SetPosition(id netconfig.EntityID, x, y, z float32) {
	entry, ok := m.entry(id)
	if !ok {
		return
	}
	netcomponents.RenderTransform.SetValue(entry, netcomponents.RenderTransformData{
		X: float64(x),
		Y: float64(y),
		Z: float64(z),
	})
}

// MarkLocal tags id as the local player, moving the tag off any previous
// local entity.
func (m *Mirror) MarkLocal(id netconfig.EntityID) {
	if m.hasLocal && m.local == id {
		return
	}
	if m.hasLocal {
		if prev, ok := m.entry(m.local); ok {
			retag(prev, tags.LocalPlayer, tags.RemotePlayer)
		}
	}
	m.local = id
	m.hasLocal = true
	if entry, ok := m.entry(id); ok {
		retag(entry, tags.RemotePlayer, tags.LocalPlayer)
	}
	log.Printf("[mirror] local player is entity %d", id)
}

// Entry returns the live entry mirrored for id.
func (m *Mirror) Entry(id netconfig.EntityID) (*donburi.Entry, bool) {
	return m.entry(id)
}

func (m *Mirror) entry(id netconfig.EntityID) (*donburi.Entry, bool) {
	entity, ok := m.handles[id]
	if !ok || !m.world.Valid(entity) {
		return nil, false
	}
	return m.world.Entry(entity), true
}

func retag(entry *donburi.Entry, from, to donburi.IComponentType) {
	if entry.HasComponent(from) {
		entry.RemoveComponent(from)
	}
	if !entry.HasComponent(to) {
		entry.AddComponent(to)
	}
}
