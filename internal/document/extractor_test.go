package document

import (
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aohus/political-metrics/internal/platform/metrics"
)

const memberBillDoc = `의안번호 2201234

발의연월일 : 2024. 1. 10.

발 의 자 : 김철수 의원 등 12인

제안이유

현행법은 보호 대상을
좁게 규정하고 있다.
이를 바로잡으려는 것이다.

주요내용

가. 보호 대상을 확대한다(안 제2조).
나. 위반 시 제재를 신설한다(안 제31조).

법률 제 호

국회법 일부를 다음과 같이 개정한다.
제2조제1항 중 "가목"을 "가목 및 나목"으로 한다.

부 칙

이 법은 공포한 날부터 시행한다.

신ㆍ구조문대비표

현 행 | 개 정 안`

func TestParse_MemberBill(t *testing.T) {
	e := NewExtractor(nil)
	info := e.Parse("2201234_국회법일부개정법률안", memberBillDoc)

	assert.Equal(t, "2201234", info.BillNo)
	assert.Equal(t, "2024. 1. 10.", info.ProposalDate)
	assert.Empty(t, info.SubmissionDate)
	assert.False(t, info.IsAlternative)
	assert.Empty(t, info.SupersededBillNos)

	require.Contains(t, info.Sections, SectionReason)
	require.Contains(t, info.Sections, SectionContent)
	require.Contains(t, info.Sections, SectionStatuteText)
	require.Contains(t, info.Sections, SectionAddendum)
	require.Contains(t, info.Sections, SectionComparisonTable)
	assert.NotContains(t, info.Sections, SectionReasonAndContent)

	// Soft line wraps inside the reason section collapse; breaks after a
	// sentence-ending period survive.
	assert.Equal(t, "현행법은 보호 대상을좁게 규정하고 있다.\n이를 바로잡으려는 것이다.", info.Sections[SectionReason])
	assert.Contains(t, info.Sections[SectionStatuteText], "국회법 일부를 다음과 같이 개정한다.")
	assert.NotContains(t, info.Sections[SectionStatuteText], "부 칙")
	assert.Contains(t, info.Sections[SectionAddendum], "이 법은 공포한 날부터 시행한다.")
	assert.Contains(t, info.Sections[SectionComparisonTable], "신ㆍ구조문대비표")
}

func TestParse_CombinedSectionWins(t *testing.T) {
	text := `제안연월일 : 2024. 3. 2.

제안이유 및 주요내용

보호 대상을 확대하려는 것이다.

참고사항

관련 법률안 없음`

	info := NewExtractor(nil).Parse("2205678_예시법률안", text)

	assert.Equal(t, "2024. 3. 2.", info.SubmissionDate)
	require.Contains(t, info.Sections, SectionReasonAndContent)
	assert.NotContains(t, info.Sections, SectionReason)
	assert.NotContains(t, info.Sections, SectionContent)
	assert.Equal(t, "보호 대상을 확대하려는 것이다.", info.Sections[SectionReasonAndContent])
	assert.Contains(t, info.Sections, SectionReference)
}

func TestParse_AlternativeBill(t *testing.T) {
	text := `제안연월일 : 2024. 5. 1.

1. 대안의 제안경위

가. 국회법 일부개정법률안(제2100001호)과 국회법 일부개정법률안(2105002)을
2024. 4. 30. 심사한 결과 위원회 대안을 제안하기로 함.

2. 대안의 제안이유 및 주요내용

제2109999호는 여기서 언급되어도 수집되지 않는다.`

	info := NewExtractor(nil).Parse("2206000_국회법일부개정법률안(대안)", text)

	assert.True(t, info.IsAlternative)
	// 2024 appears followed by a period, so it is an ordinal-style token and
	// is excluded; the number cited after the subsection boundary is too.
	assert.Equal(t, []string{"2100001", "2105002"}, info.SupersededBillNos)
}

func TestParse_PlainTitleIsNotAlternative(t *testing.T) {
	text := `1. 대안의 제안경위

국회법 일부개정법률안(제2100001호)`

	info := NewExtractor(nil).Parse("2206001_국회법일부개정법률안", text)

	assert.False(t, info.IsAlternative)
	assert.Empty(t, info.SupersededBillNos)
}

func TestParse_NoSections(t *testing.T) {
	info := NewExtractor(nil).Parse("2206002", "본문 없는 문서")

	assert.Equal(t, "2206002", info.BillNo)
	assert.Empty(t, info.Sections)
	assert.Equal(t, "본문 없는 문서", info.FullText)
}

func TestParse_CountsParsedDocuments(t *testing.T) {
	m := metrics.New()
	e := NewExtractor(nil, WithMetrics(m))

	e.Parse("2206003_예시법률안", memberBillDoc)
	e.Parse("2206004_예시법률안", "본문 없는 문서")

	assert.Equal(t, 2.0, promtest.ToFloat64(m.DocumentsParsed))
	assert.Zero(t, promtest.ToFloat64(m.DocumentsFailed))
}

func TestCollapseSoftWraps(t *testing.T) {
	assert.Equal(t, "한 줄로이어진다.\n다음 문장", collapseSoftWraps("한 줄로\n이어진다.\n다음 문장"))
	assert.Equal(t, "끝.\n", collapseSoftWraps("끝.\n\n"))
	assert.Equal(t, "시작", collapseSoftWraps("\n시작"))
}
