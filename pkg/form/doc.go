// Package form models the settings form a host module assembles from content
// type fragments. Elements are declared in order; repeatable groups carry the
// hidden count field and "add more" button that let the host grow the group
// between submissions. Values holds defaults and submitted data as typed
// single and indexed entries so content types never synthesise field names
// themselves; the indexed `name[i][text]` wire form only appears in
// EncodeURL/ParseURL.
package form
