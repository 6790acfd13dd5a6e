package festival

import "testing"

func TestExtractRegion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"경상북도 영양군", "경상북도"},
		{"부산시 해운대구 우동", "부산시"},
		{"경기도", "경기도"},
		{"  서울특별시   종로구 ", "서울특별시"},
		{"전라남도\t순천시", "전라남도"},
		{"", "기타"},
		{"   ", "기타"},
		{"\n\t", "기타"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExtractRegion(tt.input); got != tt.expected {
				t.Errorf("ExtractRegion(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
