// Package form holds parsed form bodies, both urlencoded and multipart ones.
package form

import "iter"

// Data is a single form entry. Urlencoded forms fill the Name and Value only,
// multipart ones may populate the rest.
type Data struct {
	Name string
	// Filename is set for file uploads only.
	Filename string
	// Type is the Content-Type of the part.
	Type string
	// Charset is the explicitly set charset of the part, otherwise inherited
	// from the form-wide _charset_ entry if any.
	Charset string
	Value   string
}

// Form is a sequence of form entries, preserving the order they appeared in.
type Form []Data

// Name returns the first entry by its name.
func (f Form) Name(name string) (Data, bool) {
	for _, entry := range f {
		if entry.Name == name {
			return entry, true
		}
	}

	return Data{}, false
}

// Names iterates over all entries by the name.
func (f Form) Names(name string) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, entry := range f {
			if entry.Name == name {
				if !yield(entry) {
					return
				}
			}
		}
	}
}

// Values collects the values of all entries by the name.
func (f Form) Values(name string) (values []string) {
	for _, entry := range f {
		if entry.Name == name {
			values = append(values, entry.Value)
		}
	}

	return values
}

// File returns the first file-carrying entry by its filename.
func (f Form) File(filename string) (Data, bool) {
	for _, entry := range f {
		if entry.Filename == filename {
			return entry, true
		}
	}

	return Data{}, false
}

// Files iterates over all file-carrying entries by the filename.
func (f Form) Files(filename string) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, entry := range f {
			if entry.Filename == filename {
				if !yield(entry) {
					return
				}
			}
		}
	}
}
