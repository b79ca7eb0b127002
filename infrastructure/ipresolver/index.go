package ipresolver

import (
	"veriface.io/infrastructure/ipresolver/maxmind"
	"veriface.io/infrastructure/ipresolver/types"
)

var IPResolverInstance types.IPResolver = &maxmind.MaxMindIPResolver{}
