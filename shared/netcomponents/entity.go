package netcomponents

import (
	"github.com/automoto/netsync/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetEntityData struct {
	ID netconfig.EntityID
}

var NetEntity = donburi.NewComponentType[NetEntityData]()
