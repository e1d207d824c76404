package manual

import "github.com/aquasense/aquasense-engine/pkg/models"

// DefaultManuals returns the built-in emergency response corpus, used
// when no external manuals file is configured.
func DefaultManuals() []models.ManualDocument {
	return []models.ManualDocument{
		{
			ID:       1,
			Title:    "수질 사고 긴급 대응 메뉴얼",
			Type:     "water_quality_emergency",
			Keywords: []string{"수질", "사고", "긴급", "오염", "대응"},
			Content: `**수질 사고 긴급 대응 절차**

1. 즉시 조치
   - 오염원 파악 및 차단
   - 관할 기관 신고 (환경부, 지자체)
   - 취수 중단 검토

2. 현장 대응
   - 오염 범위 조사
   - 수질 시료 채취 및 분석
   - 확산 방지 조치 (오일펜스, 흡착포 등)

3. 사후 관리
   - 지속적인 수질 모니터링
   - 원인 조사 및 재발 방지 대책 수립`,
		},
		{
			ID:       2,
			Title:    "조류 대량 발생 긴급 대응 메뉴얼",
			Type:     "algae_emergency",
			Keywords: []string{"조류", "녹조", "경보", "긴급", "대발생"},
			Content: `**조류 대량 발생 긴급 대응 절차**

1. 경보 발령
   - 조류 경보제 단계 확인 (관심/주의/경보)
   - 유관 기관 상황 전파

2. 저감 조치
   - 수류 확보 (댐, 보 방류량 조절)
   - 조류 제거 (수거선, 살포제 검토)
   - 취수구 이동 또는 심층 취수 전환

3. 정수 처리 강화
   - 고도 정수 처리 가동
   - 취수원 수질 검사 주기 단축`,
		},
		{
			ID:       3,
			Title:    "홍수 긴급 대응 메뉴얼",
			Type:     "flood_emergency",
			Keywords: []string{"홍수", "수위", "강수량", "침수", "긴급"},
			Content: `**홍수 긴급 대응 절차**

1. 상황 판단
   - 수위 및 강수량 실시간 감시
   - 홍수 예보 발령 여부 확인

2. 긴급 조치
   - 하류 지역 주민 대피 안내
   - 댐, 보 수문 개방 검토
   - 저지대 침수 대비 배수 시설 점검

3. 복구
   - 침수 지역 방역 및 복구 지원
   - 시설물 안전 점검`,
		},
		{
			ID:       4,
			Title:    "수질 관리 가이드",
			Type:     "water_quality_warning",
			Keywords: []string{"수질", "관리", "pH", "BOD", "개선"},
			Content: `**수질 관리 가이드**

- pH 정상 범위(6.5~8.5) 유지 상태 점검
- BOD 상승 시 유기물 오염원 조사
- 주기적인 수질 측정 및 기록 관리
- 이상 수치 지속 시 정밀 조사 의뢰`,
		},
		{
			ID:       5,
			Title:    "조류 발생 대응 가이드",
			Type:     "algae_warning",
			Keywords: []string{"조류", "주의", "FAI", "대응"},
			Content: `**조류 발생 대응 가이드**

- 조류 지표(FAI, BAI, DAI, IAI) 추이 감시
- 수온 및 일사량 등 발생 조건 확인
- 취수 시설 사전 점검
- 주의 단계 지속 시 저감 설비 가동 준비`,
		},
		{
			ID:       6,
			Title:    "영양염류 관리 가이드",
			Type:     "nutrient_warning",
			Keywords: []string{"영양염류", "총질소", "총인", "T-N", "T-P"},
			Content: `**영양염류 관리 가이드**

- 총질소(T-N), 총인(T-P) 유입원 파악
- 하수 처리장 방류수 수질 확인
- 비점오염원(농경지, 축사) 관리 강화
- 영양염류 저감 시설 운영 점검`,
		},
		{
			ID:       7,
			Title:    "조류 예방 가이드",
			Type:     "algae_info",
			Keywords: []string{"조류", "예방", "관심", "모니터링"},
			Content: `**조류 예방 가이드**

- 조류 관심 단계에서는 모니터링 주기 단축
- 영양염류 유입 저감 조치 병행
- 기상 전망(수온 상승기) 참고
- 관계 기관 정보 공유 체계 유지`,
		},
	}
}
