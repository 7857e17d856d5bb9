// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords tags tutorial text with topic labels from a fixed
// library of medical-imaging terms.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// Entry pairs a keyword label with the pattern that detects it.
type Entry struct {
	Label   string
	Pattern *regexp.Regexp
}

func entry(label, pattern string) Entry {
	return Entry{Label: label, Pattern: regexp.MustCompile(`(?i)` + pattern)}
}

// library is compiled once at package init and never modified.
var library = []Entry{
	// Methods
	entry("segmentation", `\b(segment(ation|ing)?|segmented)\b`),
	entry("registration", `\b(registr(ation|ing)?)\b`),
	entry("classification", `\b(classif(y|ication|ier))\b`),
	entry("detection", `\b(detect(ion|ing|or)?)\b`),
	entry("tracking", `\b(track(ing)?)\b`),
	entry("reconstruction", `\b(reconstruct(ion|ing)?)\b`),
	entry("deep learning", `\b(deep\s*learn(ing)?|neural\s*network|CNN|DNN)\b`),
	entry("machine learning", `\b(machine\s*learn(ing)?|ML)\b`),
	entry("U-Net", `\b(U-?Net|UNet)\b`),
	entry("transformer", `\b(transformer|attention)\b`),
	entry("GAN", `\b(GAN|generative\s*adversarial)\b`),
	entry("diffusion", `\b(diffusion|denoising)\b`),
	entry("autoencoder", `\b(autoencoder|VAE)\b`),
	entry("CNN", `\b(CNN|convolutional)\b`),

	// Modalities
	entry("MRI", `\b(MRI|magnetic\s*resonance)\b`),
	entry("CT", `\b(CT|computed\s*tomography)\b`),
	entry("X-ray", `\b(X-?ray|radiograph)\b`),
	entry("ultrasound", `\b(ultrasound|US|echo)\b`),
	entry("PET", `\b(PET|positron\s*emission)\b`),
	entry("microscopy", `\b(microscop(y|ic))\b`),
	entry("histopathology", `\b(histopatholog(y|ical)|pathology)\b`),

	// Tasks
	entry("diagnosis", `\b(diagnos(is|tic|e))\b`),
	entry("prognosis", `\b(prognos(is|tic))\b`),
	entry("surgery", `\b(surg(ery|ical)|intraoperative)\b`),
	entry("treatment", `\b(treatment|therapy)\b`),
	entry("analysis", `\b(analy(sis|ze|zing))\b`),
	entry("visualization", `\b(visualiz(ation|e|ing)|rendering)\b`),

	// Anatomy
	entry("brain", `\b(brain|cerebral|neural)\b`),
	entry("cardiac", `\b(cardiac|heart)\b`),
	entry("lung", `\b(lung|pulmonary)\b`),
	entry("liver", `\b(liver|hepatic)\b`),
	entry("kidney", `\b(kidney|renal)\b`),
	entry("prostate", `\b(prostate)\b`),
	entry("breast", `\b(breast|mammography)\b`),

	// Other
	entry("dataset", `\b(dataset|data\s*set)\b`),
	entry("benchmark", `\b(benchmark)\b`),
	entry("tutorial", `\b(tutorial|guide|introduction)\b`),
	entry("python", `\b(python|py)\b`),
	entry("PyTorch", `\b(PyTorch|torch)\b`),
	entry("TensorFlow", `\b(TensorFlow|keras)\b`),
	entry("3D", `\b(3D|three-?dimensional|volumetric)\b`),
	entry("2D", `\b(2D|two-?dimensional)\b`),
}

// Library returns a copy of the keyword table in declaration order.
func Library() []Entry {
	out := make([]Entry, len(library))
	copy(out, library)
	return out
}

// Labels returns every label in the library, sorted.
func Labels() []string {
	labels := make([]string, len(library))
	for i, e := range library {
		labels[i] = e.Label
	}
	sort.Strings(labels)
	return labels
}

// Tag returns the sorted labels whose pattern matches text. Matching is
// case-insensitive and independent per label. The result is never nil.
func Tag(text string) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	tags := []string{}
	for _, e := range library {
		if seen[e.Label] || !e.Pattern.MatchString(lower) {
			continue
		}
		seen[e.Label] = true
		tags = append(tags, e.Label)
	}
	sort.Strings(tags)
	return tags
}
