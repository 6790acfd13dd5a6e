package scraper

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/festivalmap/festivals/internal/fetch"
	"github.com/festivalmap/festivals/internal/festival"
)

const testDetailURL = "https://www.mcst.go.kr/site/s_culture/festival/festivalView.jsp?pSeq=101"

func TestDetailParser_Parse(t *testing.T) {
	nav := &fakeNavigator{pages: map[string]string{testDetailURL: loadFixture(t, "detail_page.html")}}
	parser := NewDetailParser(nav, DetailOptions{})

	got, err := parser.Parse(context.Background(), testDetailURL)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &festival.Record{
		Name:        "영양 산나물 축제",
		Location:    "경상북도",
		Address:     "경상북도 영양군 영양읍 서부리 일원",
		StartDate:   "2026-05-14",
		EndDate:     "2026-05-17",
		PeriodText:  "2026. 5. 14. ~ 2026. 5. 17. | 10:00~18:00",
		Description: "청정 영양의 산나물을 주제로 한 대표 봄 축제입니다. 산나물 채취 체험과 장터가 열립니다.",
		McstURL:     testDetailURL,
		HomepageURL: "https://www.yyg.go.kr/sannamul",
		ImageURL:    "https://www.mcst.go.kr/upload/festival/sannamul.jpg",
		FeeText:     "무료",
	}

	if *got != *want {
		t.Errorf("Parse() =\n%+v\nwant\n%+v", *got, *want)
	}
}

func TestDetailParser_ParseDocument(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		check func(t *testing.T, r *festival.Record)
	}{
		{
			name: "place only gives location",
			html: `<h3>축제</h3><table><tr><th>축제장소</th><td>제주특별자치도 서귀포시</td></tr></table>`,
			check: func(t *testing.T, r *festival.Record) {
				if r.Location != "제주특별자치도" {
					t.Errorf("Location = %q", r.Location)
				}
				if r.Address != "제주특별자치도 서귀포시" {
					t.Errorf("Address = %q", r.Address)
				}
			},
		},
		{
			name: "no region or place",
			html: `<h3>축제</h3>`,
			check: func(t *testing.T, r *festival.Record) {
				if r.Location != festival.OtherRegion {
					t.Errorf("Location = %q, want %q", r.Location, festival.OtherRegion)
				}
				if r.Address != "" {
					t.Errorf("Address = %q, want empty", r.Address)
				}
			},
		},
		{
			name: "unparseable period leaves dates empty",
			html: `<dl><dt>개최기간</dt><dd>매년 5월 중</dd></dl>`,
			check: func(t *testing.T, r *festival.Record) {
				if r.StartDate != "" || r.EndDate != "" {
					t.Errorf("dates = %q..%q, want empty", r.StartDate, r.EndDate)
				}
				if r.PeriodText != "매년 5월 중" {
					t.Errorf("PeriodText = %q", r.PeriodText)
				}
			},
		},
		{
			name: "homepage fallback and protocol relative image",
			html: `<div class="view_img"><img src="//cdn.example.kr/p.jpg"></div>
				<dl><dt>홈페이지</dt><dd><a href="//fest.example.kr">바로가기</a></dd></dl>`,
			check: func(t *testing.T, r *festival.Record) {
				if r.HomepageURL != "https://fest.example.kr" {
					t.Errorf("HomepageURL = %q", r.HomepageURL)
				}
				if r.ImageURL != "https://cdn.example.kr/p.jpg" {
					t.Errorf("ImageURL = %q", r.ImageURL)
				}
			},
		},
		{
			name: "og image fallback",
			html: `<html><head><meta property="og:image" content="upload/og.jpg"></head><body></body></html>`,
			check: func(t *testing.T, r *festival.Record) {
				if r.ImageURL != "https://www.mcst.go.kr/upload/og.jpg" {
					t.Errorf("ImageURL = %q", r.ImageURL)
				}
				if r.HomepageURL != "" {
					t.Errorf("HomepageURL = %q, want empty", r.HomepageURL)
				}
			},
		},
		{
			name: "long description is truncated",
			html: `<div class="view_cont">` + strings.Repeat("가", 900) + `</div>`,
			check: func(t *testing.T, r *festival.Record) {
				if n := len([]rune(r.Description)); n != festival.DescriptionLimit {
					t.Errorf("description length = %d, want %d", n, festival.DescriptionLimit)
				}
			},
		},
	}

	parser := NewDetailParser(&fakeNavigator{}, DetailOptions{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parser.ParseDocument(mustDocument(t, tt.html), testDetailURL)
			if r.McstURL != testDetailURL {
				t.Errorf("McstURL = %q", r.McstURL)
			}
			tt.check(t, r)
		})
	}
}

func TestDetailParser_ParseError(t *testing.T) {
	parser := NewDetailParser(&fakeNavigator{}, DetailOptions{})

	_, err := parser.Parse(context.Background(), testDetailURL)
	if err == nil {
		t.Fatal("Parse() expected error, got nil")
	}
	var fetchErr *fetch.Error
	if !errors.As(err, &fetchErr) {
		t.Errorf("error should wrap *fetch.Error, got %T", err)
	}
}
