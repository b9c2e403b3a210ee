package types

import "github.com/spf13/cast"

// Typed readers for the well-known resource metadata keys. The map itself
// stays open so unknown keys round-trip; these accessors give the known ones
// a stable spelling and type.

const (
	metaMimeType    = "mimeType"
	metaHostname    = "hostname"
	metaDNSRecords  = "dnsRecords"
	metaKeyPrefix   = "keyPrefix"
	metaPermissions = "permissions"
	metaRegion      = "region"
	metaIssuer      = "issuer"
)

// MimeType returns metadata["mimeType"] for file/image/video resources.
func (r *Resource) MimeType() string {
	return cast.ToString(r.Metadata[metaMimeType])
}

// Hostname returns metadata["hostname"] for domain/server resources.
func (r *Resource) Hostname() string {
	return cast.ToString(r.Metadata[metaHostname])
}

// DNSRecords returns metadata["dnsRecords"] for domain resources.
func (r *Resource) DNSRecords() []string {
	return cast.ToStringSlice(r.Metadata[metaDNSRecords])
}

// KeyPrefix returns metadata["keyPrefix"] for apiKey resources.
func (r *Resource) KeyPrefix() string {
	return cast.ToString(r.Metadata[metaKeyPrefix])
}

// Permissions returns metadata["permissions"] for apiKey/config resources.
func (r *Resource) Permissions() []string {
	return cast.ToStringSlice(r.Metadata[metaPermissions])
}

// Region returns metadata["region"] for server/database resources.
func (r *Resource) Region() string {
	return cast.ToString(r.Metadata[metaRegion])
}

// Issuer returns metadata["issuer"] for certificate resources.
func (r *Resource) Issuer() string {
	return cast.ToString(r.Metadata[metaIssuer])
}

// SetMeta writes one metadata key, allocating the map if needed.
func (r *Resource) SetMeta(key string, value any) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]any)
	}
	r.Metadata[key] = value
}
