// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package language

import "testing"

func TestDetect_English(t *testing.T) {
	text := "The tenant shall pay rent by the 5th of each month."
	if got := Detect(text); got != English {
		t.Errorf("Detect() = %q, want %q", got, English)
	}
}

func TestDetect_Kannada(t *testing.T) {
	text := "ಬಾಡಿಗೆದಾರರು ಪ್ರತಿ ತಿಂಗಳ ೫ ನೇ ತಾರೀಖಿನೊಳಗೆ ಬಾಡಿಗೆ ಪಾವತಿಸಬೇಕು."
	if got := Detect(text); got != Kannada {
		t.Errorf("Detect() = %q, want %q", got, Kannada)
	}
}

func TestDetect_MixedBelowThreshold(t *testing.T) {
	// One Kannada word buried in a long English document stays English.
	text := "This lease agreement is made between the landlord and tenant. " +
		"The premises are located in Bengaluru (ಬೆಂಗಳೂರು). The tenant agrees " +
		"to all terms and conditions described in the following sections of " +
		"this agreement, including rent, maintenance and notice periods."
	if got := Detect(text); got != English {
		t.Errorf("Detect() = %q, want %q", got, English)
	}
}

func TestDetect_Empty(t *testing.T) {
	if got := Detect(""); got != English {
		t.Errorf("Detect(\"\") = %q, want %q", got, English)
	}
}
