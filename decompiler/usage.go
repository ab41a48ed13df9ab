package decompiler

import "strings"

// Usage is the semantic binding of a shader argument.
type Usage uint8

const (
	UsagePosition Usage = iota
	UsageBlendWeight
	UsageBlendIndices
	UsageNormal
	UsagePointSize
	UsageTexcoord
	UsageTangent
	UsageBinormal
	UsageTessFactor
	UsagePositionT
	UsageColor
	UsageFog
	UsageDepth
	UsageSample
	UsageUnknown
)

var usageNames = [...]string{
	UsagePosition:     "Position",
	UsageBlendWeight:  "BlendWeight",
	UsageBlendIndices: "BlendIndices",
	UsageNormal:       "Normal",
	UsagePointSize:    "PSize",
	UsageTexcoord:     "Texcoord",
	UsageTangent:      "Tangent",
	UsageBinormal:     "Binormal",
	UsageTessFactor:   "TessFactor",
	UsagePositionT:    "PositionT",
	UsageColor:        "Color",
	UsageFog:          "Fog",
	UsageDepth:        "Depth",
	UsageSample:       "Sample",
	UsageUnknown:      "Unknown",
}

// String returns the usage name.
func (u Usage) String() string {
	if int(u) < len(usageNames) {
		return usageNames[u]
	}
	return usageNames[UsageUnknown]
}

// Semantic returns the HLSL semantic name without index, e.g. "TEXCOORD".
func (u Usage) Semantic() string {
	return strings.ToUpper(u.String())
}
