// Package vault implements the content-package layout: entry paths
// under jcr_root and META-INF/vault, the XML descriptors, and the zip
// container they ship in.
package vault

import (
	"time"

	"github.com/beevik/etree"
)

const (
	// ContentEntrySuffix is appended to a repository path to form the
	// node's descriptor entry.
	ContentEntrySuffix = "/.content.xml"

	entryRoot       = "jcr_root"
	binarySuffix    = "/_jcr_content/renditions/original"
	FilterEntry     = "META-INF/vault/filter.xml"
	PropertiesEntry = "META-INF/vault/properties.xml"

	authorPlaceholder = "anonymous"
)

// ContentEntry is the archive path of a page or asset descriptor.
func ContentEntry(repoPath string) string {
	return entryRoot + repoPath + ContentEntrySuffix
}

// BinaryEntry is the archive path of an asset's original rendition.
func BinaryEntry(repoPath string) string {
	return entryRoot + repoPath + binarySuffix
}

// AssetDescriptor renders the fixed dam:Asset node descriptor, varying
// only in the mime type of its original rendition.
func AssetDescriptor(mimeType string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("jcr:root")
	root.CreateAttr("xmlns:jcr", "http://www.jcp.org/jcr/1.0")
	root.CreateAttr("xmlns:nt", "http://www.jcp.org/jcr/nt/1.0")
	root.CreateAttr("xmlns:dam", "http://www.day.com/dam/1.0")
	root.CreateAttr("jcr:primaryType", "dam:Asset")
	content := root.CreateElement("jcr:content")
	content.CreateAttr("jcr:primaryType", "dam:AssetContent")
	renditions := content.CreateElement("renditions")
	renditions.CreateAttr("jcr:primaryType", "nt:folder")
	original := renditions.CreateElement("original")
	original.CreateAttr("jcr:primaryType", "nt:file")
	resource := original.CreateElement("jcr:content")
	resource.CreateAttr("jcr:primaryType", "nt:resource")
	resource.CreateAttr("jcr:mimeType", mimeType)
	doc.Indent(4)
	return doc.WriteToBytes()
}

// Filter renders the workspace filter manifest: one rule per repository
// path, in the order given, no sorting.
func Filter(paths []string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("workspaceFilter")
	root.CreateAttr("version", "1.0")
	for _, p := range paths {
		f := root.CreateElement("filter")
		f.CreateAttr("root", p)
	}
	doc.Indent(4)
	return doc.WriteToBytes()
}

// Properties renders the package metadata descriptor. Author fields are
// the fixed placeholder; created and lastModified both carry the build
// instant.
func Properties(packageName string, now time.Time) ([]byte, error) {
	stamp := now.Format(time.RFC3339)
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="no"`)
	doc.CreateDirective(`DOCTYPE properties SYSTEM "http://java.sun.com/dtd/properties.dtd"`)
	root := doc.CreateElement("properties")
	for _, kv := range [][2]string{
		{"name", packageName},
		{"group", ""},
		{"version", ""},
		{"description", ""},
		{"created", stamp},
		{"createdBy", authorPlaceholder},
		{"lastModified", stamp},
		{"lastModifiedBy", authorPlaceholder},
		{"lastWrapped", stamp},
		{"lastWrappedBy", authorPlaceholder},
	} {
		e := root.CreateElement("entry")
		e.CreateAttr("key", kv[0])
		e.SetText(kv[1])
	}
	doc.Indent(4)
	return doc.WriteToBytes()
}
