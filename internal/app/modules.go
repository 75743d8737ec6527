package app

import (
	"github.com/vk/mcgridgo/internal/module"
	"github.com/vk/mcgridgo/modules/breitwigner"
	"github.com/vk/mcgridgo/modules/product"
	"github.com/vk/mcgridgo/modules/propagator"
)

// coreDefinitions is the definitive list of all module types compiled into
// the mcgridgo binary.
var coreDefinitions = []*module.Definition{
	breitwigner.Definition(),
	propagator.Definition(),
	product.Definition(),
}
