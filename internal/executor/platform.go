package executor

import (
	"fmt"
	"strings"
)

// Platform holds the per-dialect parameters of an interactive CLI session
type Platform struct {
	Name string
	Port int
	// PromptSuffixes are the characters a device prompt can end with
	PromptSuffixes []string
	// DisablePaging is sent once after login so long output is not paged
	DisablePaging []string
}

const (
	defaultSSHPort  = 22
	genericPlatform = "generic"
)

var (
	ciscoPrompt = []string{"#", ">"}
	vrpPrompt   = []string{">", "]"}
	unixPrompt  = []string{"$", "#"}
)

// platforms lists the dialects with known prompt and paging behavior
var platforms = map[string]Platform{
	"arista_eos":        {PromptSuffixes: ciscoPrompt, DisablePaging: []string{"terminal length 0"}},
	"cisco_asa":         {PromptSuffixes: ciscoPrompt, DisablePaging: []string{"terminal pager 0"}},
	"cisco_ios":         {PromptSuffixes: ciscoPrompt, DisablePaging: []string{"terminal length 0"}},
	"cisco_nxos":        {PromptSuffixes: ciscoPrompt, DisablePaging: []string{"terminal length 0"}},
	"cisco_xe":          {PromptSuffixes: ciscoPrompt, DisablePaging: []string{"terminal length 0"}},
	"cisco_xr":          {PromptSuffixes: ciscoPrompt, DisablePaging: []string{"terminal length 0"}},
	"dell_os10":         {PromptSuffixes: ciscoPrompt, DisablePaging: []string{"terminal length 0"}},
	"extreme_exos":      {PromptSuffixes: ciscoPrompt, DisablePaging: []string{"disable clipaging"}},
	"fortinet":          {PromptSuffixes: []string{"#", "$"}},
	"hp_comware":        {PromptSuffixes: vrpPrompt, DisablePaging: []string{"screen-length disable"}},
	"hp_procurve":       {PromptSuffixes: ciscoPrompt, DisablePaging: []string{"no page"}},
	"huawei":            {PromptSuffixes: vrpPrompt, DisablePaging: []string{"screen-length 0 temporary"}},
	"juniper_junos":     {PromptSuffixes: []string{">", "#", "%"}, DisablePaging: []string{"set cli screen-length 0"}},
	"linux":             {PromptSuffixes: unixPrompt},
	"mikrotik_routeros": {PromptSuffixes: []string{">"}},
	"paloalto_panos":    {PromptSuffixes: ciscoPrompt, DisablePaging: []string{"set cli pager off"}},
	"vyos":              {PromptSuffixes: unixPrompt, DisablePaging: []string{"set terminal length 0"}},
	genericPlatform:     {PromptSuffixes: []string{"#", ">", "$", "%", "]"}},
}

// LookupPlatform resolves a device_type to its session parameters.
// An "_ssh" suffix is ignored and unknown types get the generic platform;
// only telnet and serial variants are refused.
func LookupPlatform(deviceType string) (Platform, error) {
	if strings.HasSuffix(deviceType, "_telnet") || strings.HasSuffix(deviceType, "_serial") {
		return Platform{}, fmt.Errorf("device_type %q: only SSH transport is supported", deviceType)
	}

	name := strings.TrimSuffix(deviceType, "_ssh")
	p, ok := platforms[name]
	if !ok {
		name = genericPlatform
		p = platforms[genericPlatform]
	}
	p.Name = name
	p.Port = defaultSSHPort
	return p, nil
}
