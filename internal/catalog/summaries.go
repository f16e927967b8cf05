package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Summaries maps a canonical slug to the one-line summary of that error.
type Summaries map[string]string

var builtinSummaries = Summaries{
	"persistentvolumeclaimpending": "PersistentVolumeClaim is stuck in pending state and cannot be bound to a volume.",
	"podexitsigterm":               "Pod was terminated gracefully with SIGTERM signal during shutdown.",
	"podschedulingfailed":          "Pod could not be scheduled on any available node in the cluster.",
	"portalreadyallocated":         "Port is already allocated or in use by another service.",
	"quotaexceeded":                "Resource quota limits have been exceeded in the namespace.",
	"readinessprobe":               "Readiness probe is failing, preventing pod from receiving traffic.",
	"secretnotfound":               "Referenced Kubernetes secret does not exist in the namespace.",
	"servicenotfound":              "Referenced Kubernetes service does not exist in the namespace.",
	"volumemountfailed":            "Volume failed to mount to the pod container.",
	"certificateexpired":           "TLS certificate has expired and needs renewal.",
	"clusterautoscalerfailed":      "Cluster autoscaler failed to scale nodes up or down.",
	"containercreating":            "Pod is stuck in ContainerCreating state and cannot start.",
	"contextswitchfailed":          "Failed to switch kubectl context to target cluster.",
	"corednsfailed":                "CoreDNS service is failing and DNS resolution is broken.",
	"cputhrottling":                "Container CPU usage is being throttled due to resource limits.",
	"crashloopbackoff":             "Pod is stuck in crash loop, repeatedly restarting after failures.",
	"deadlockdetected":             "Resource deadlock detected in cluster scheduling decisions.",
	"etcdfull":                     "etcd cluster storage is full and cannot accept new data.",
	"failedmount":                  "Volume failed to mount to container filesystem.",
	"hpanotworking":                "Horizontal Pod Autoscaler is not functioning properly.",
	"ingressnotworking":            "Ingress controller is not routing traffic to backend services.",
	"invalidyaml":                  "Kubernetes manifest contains invalid YAML syntax.",
	"limitrangeviolation":          "Pod resource configuration violates namespace LimitRange constraints.",
	"namespacenotfound":            "Referenced Kubernetes namespace does not exist.",
	"podstuckpending":              "Pod remains in pending state and cannot be scheduled.",
	"rbacpermissiondenied":         "Operation denied due to insufficient RBAC permissions.",
	"startupprobefailed":           "Container startup probe is failing during initialization.",
}

// DefaultSummaries returns a copy of the built-in summary table.
func DefaultSummaries() Summaries {
	return builtinSummaries.Merge(nil)
}

// Merge returns a new table holding s overlaid with overlay.
func (s Summaries) Merge(overlay Summaries) Summaries {
	out := make(Summaries, len(s)+len(overlay))
	for slug, text := range s {
		out[slug] = text
	}
	for slug, text := range overlay {
		out[slug] = text
	}
	return out
}

// Lookup returns the summary for slug.
func (s Summaries) Lookup(slug string) (string, bool) {
	text, ok := s[slug]
	return text, ok
}

// SortedSlugs returns the table's slugs in lexical order.
func (s Summaries) SortedSlugs() []string {
	slugs := make([]string, 0, len(s))
	for slug := range s {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// summariesFile is the on-disk shape of a summaries overlay.
type summariesFile struct {
	Summaries Summaries `yaml:"summaries"`
}

// LoadSummaries reads a YAML summaries overlay from path.
func LoadSummaries(path string) (Summaries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summaries %s: %w", path, err)
	}
	return ParseSummaries(data)
}

// ParseSummaries decodes a YAML summaries overlay.
func ParseSummaries(data []byte) (Summaries, error) {
	var file summariesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse summaries: %w", err)
	}
	for slug, text := range file.Summaries {
		if slug == "" {
			return nil, fmt.Errorf("parse summaries: empty slug")
		}
		if text == "" {
			return nil, fmt.Errorf("parse summaries: empty summary for %q", slug)
		}
	}
	if file.Summaries == nil {
		file.Summaries = Summaries{}
	}
	return file.Summaries, nil
}

// EncodeYAML encodes the table in the overlay file format.
func (s Summaries) EncodeYAML() ([]byte, error) {
	out, err := yaml.Marshal(summariesFile{Summaries: s})
	if err != nil {
		return nil, fmt.Errorf("encode summaries: %w", err)
	}
	return out, nil
}
