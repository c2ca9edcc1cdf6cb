// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Upload is one image file staged for a vehicle mutation.
type Upload struct {
	Filename string
	Data     []byte
}

// FormSession is the state of one vehicle create/edit session. A fresh
// FormSession is built per edit; ImagesTouched belongs here and never to
// module state, so an edit that only changes price or description cannot
// implicitly resend or wipe image data.
type FormSession struct {
	// Fields holds vehicle fields under canonical snake_case names.
	Fields map[string]string

	Files     []Upload
	ImageURLs []string

	// ImagesTouched records that the admin interacted with an image input
	// during this session. Image data is sent only when it is set.
	ImagesTouched bool
}

// TouchImages marks the session's image inputs as interacted with.
func (f *FormSession) TouchImages() {
	f.ImagesTouched = true
}

// Payload is the wire form of one vehicle mutation, ready for multipart
// encoding.
type Payload struct {
	Fields    map[string]string
	Files     []Upload
	ImageURLs []string
}

// BuildPayload shapes a form session into an outgoing payload compatible
// with the detected row schema. A field is included iff the schema is wholly
// unknown or the detected key set contains its adapted name; this avoids
// both sending fields the API rejects as unrecognized and dropping fields
// it requires. Files and image URLs ride along only when the session's
// image inputs were touched.
func BuildPayload(profile SchemaProfile, form FormSession) Payload {
	payload := Payload{Fields: make(map[string]string, len(form.Fields))}

	for snake, value := range form.Fields {
		key := profile.FieldKey(snake)
		if profile.Unknown() || profile.HasKey(key) {
			payload.Fields[key] = value
		}
	}

	if form.ImagesTouched {
		payload.Files = form.Files
		payload.ImageURLs = form.ImageURLs
	}

	return payload
}
