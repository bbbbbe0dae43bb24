package catalog

// Default returns the built-in endpoint catalog. The list is fixed at build
// time; deployments that need a different set provide a YAML file instead.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		// The built-in list is validated by tests; a collision here is a
		// programming error.
		panic(err)
	}
	return c
}

var defaultEntries = []Descriptor{
	{Name: "Seçmen Sorgulama", URLTemplate: "http://api.nabi.gt.tc/secmen?tc={tc}", Params: []string{"tc"}},
	{Name: "Öğretmen Sorgulama", URLTemplate: "http://api.nabi.gt.tc/ogretmen?ad={ad}&soyad={soyad}", Params: []string{"ad", "soyad"}},
	{Name: "Yabancı Sorgulama", URLTemplate: "http://api.nabi.gt.tc/yabanci?ad={ad}&soyad={soyad}", Params: []string{"ad", "soyad"}},
	{Name: "Site Log Sorgulama", URLTemplate: "http://api.nabi.gt.tc/log?site={site}", Params: []string{"site"}},
	{Name: "Vesika Sorgulama (Hanedan)", URLTemplate: "http://api.nabi.gt.tc/vesika2?tc={tc}", Params: []string{"tc"}},
	{Name: "Tapu Sorgulama (Hanedan)", URLTemplate: "http://api.nabi.gt.tc/tapu2?tc={tc}", Params: []string{"tc"}},
	{Name: "İş Kaydı Sorgulama", URLTemplate: "http://api.nabi.gt.tc/iskaydi?adsoyad={adsoyad}", Params: []string{"adsoyad"}},
	{Name: "Sertifika Sorgulama (Hanedan)", URLTemplate: "http://api.nabi.gt.tc/sertifika2?tc={tc}", Params: []string{"tc"}},
	{Name: "Papara No Sorgulama", URLTemplate: "http://api.nabi.gt.tc/papara?paparano={paparano}", Params: []string{"paparano"}},
	{Name: "İninal No Sorgulama", URLTemplate: "http://api.nabi.gt.tc/ininal?ininal_no={ininal_no}", Params: []string{"ininal_no"}},
	{Name: "TurkNet Sorgulama", URLTemplate: "http://api.nabi.gt.tc/turknet?tc={tc}", Params: []string{"tc"}},
	{Name: "Seri No Sorgulama", URLTemplate: "http://api.nabi.gt.tc/serino?tc={tc}", Params: []string{"tc"}},
	{Name: "Firma Ünvan Sorgulama", URLTemplate: "http://api.nabi.gt.tc/firma?unvan={unvan}", Params: []string{"unvan"}},
	{Name: "Craftrise Kullanıcı Sorgu", URLTemplate: "http://api.nabi.gt.tc/craftrise?ad={ad}", Params: []string{"ad"}},
	{Name: "SGK Sorgulama (Hanedan)", URLTemplate: "http://api.nabi.gt.tc/sgk2?tc={tc}", Params: []string{"tc"}},
	{Name: "Plaka Sorgulama (Hanedan)", URLTemplate: "http://api.nabi.gt.tc/plaka2?plaka={plaka}", Params: []string{"plaka"}},
	{Name: "Plaka İsim Sorgulama", URLTemplate: "http://api.nabi.gt.tc/plakaismi?isim={isim}", Params: []string{"isim"}},
	{Name: "Plaka Borç Sorgulama", URLTemplate: "http://api.nabi.gt.tc/plakaborc?plaka={plaka}", Params: []string{"plaka"}},
	{Name: "AKP Üye Sorgulama", URLTemplate: "http://api.nabi.gt.tc/akp?ad={ad}&soyad={soyad}", Params: []string{"ad", "soyad"}},
	{Name: "AI Fotoğraf Üretici", URLTemplate: "http://api.nabi.gt.tc/aifoto?img={img}", Params: []string{"img"}},
	{Name: "Instagram Kullanıcı Sorgulama", URLTemplate: "http://api.nabi.gt.tc/insta?usr={usr}", Params: []string{"usr"}},
	{Name: "Facebook Kullanıcı Sorgulama (Hanedan)", URLTemplate: "http://api.nabi.gt.tc/facebook_hanedan?ad={ad}&soyad={soyad}", Params: []string{"ad", "soyad"}},
	{Name: "Üniversite Öğrenci Sorgulama", URLTemplate: "http://api.nabi.gt.tc/uni?tc={tc}", Params: []string{"tc"}},
	{Name: "LGS Sorgulama (Hanedan)", URLTemplate: "http://api.nabi.gt.tc/lgs_hanedan?tc={tc}", Params: []string{"tc"}},
	{Name: "Okul Numarası Sorgulama", URLTemplate: "http://api.nabi.gt.tc/okulno_hanedan?tc={tc}", Params: []string{"tc"}},
	{Name: "TC Sorgulama", URLTemplate: "http://api.nabi.gt.tc/tc_sorgulama?tc={tc}", Params: []string{"tc"}},
	{Name: "TC PRO Sorgulama", URLTemplate: "http://api.nabi.gt.tc/tc_pro_sorgulama?tc={tc}", Params: []string{"tc"}},
	{Name: "Hayat Hikayesi Sorgulama", URLTemplate: "http://api.nabi.gt.tc/hayat_hikayesi?tc={tc}", Params: []string{"tc"}},
	{Name: "Ad Soyad Sorgulama", URLTemplate: "http://api.nabi.gt.tc/ad_soyad?ad={ad}&soyad={soyad}", Params: []string{"ad", "soyad"}},
	{Name: "Ad Soyad PRO Sorgulama", URLTemplate: "http://api.nabi.gt.tc/ad_soyad_pro?tc={tc}", Params: []string{"tc"}},
	{Name: "İş Yeri Sorgulama", URLTemplate: "http://api.nabi.gt.tc/is_yeri?tc={tc}", Params: []string{"tc"}},
	{Name: "Vergi No Sorgulama", URLTemplate: "http://api.nabi.gt.tc/vergi_no?vergi={vergi}", Params: []string{"vergi"}},
	{Name: "Yaş Sorgulama", URLTemplate: "http://api.nabi.gt.tc/yas?tc={tc}", Params: []string{"tc"}},
	{Name: "TC GSM Sorgulama", URLTemplate: "http://api.nabi.gt.tc/tc_gsm?tc={tc}", Params: []string{"tc"}},
	{Name: "GSM TC Sorgulama", URLTemplate: "http://api.nabi.gt.tc/gsm_tc?gsm={gsm}", Params: []string{"gsm"}},
	{Name: "Adres Sorgulama", URLTemplate: "http://api.nabi.gt.tc/adres?tc={tc}", Params: []string{"tc"}},
	{Name: "Hane Sorgulama", URLTemplate: "http://api.nabi.gt.tc/hane?tc={tc}", Params: []string{"tc"}},
	{Name: "Apartman Sorgulama", URLTemplate: "http://api.nabi.gt.tc/apartman?tc={tc}", Params: []string{"tc"}},
	{Name: "Ada Parsel Sorgulama", URLTemplate: "http://api.nabi.gt.tc/ada_parsel?il={il}&ada={ada}&parsel={parsel}", Params: []string{"il", "ada", "parsel"}},
	{Name: "Adı İl İlçe Sorgulama", URLTemplate: "http://api.nabi.gt.tc/adi_il_ilce?ad={ad}&il={il}", Params: []string{"ad", "il"}},
	{Name: "Aile Sorgulama", URLTemplate: "http://api.nabi.gt.tc/aile?tc={tc}", Params: []string{"tc"}},
	{Name: "Aile PRO Sorgulama", URLTemplate: "http://api.nabi.gt.tc/aile_pro?tc={tc}", Params: []string{"tc"}},
	{Name: "Eş Sorgulama", URLTemplate: "http://api.nabi.gt.tc/es?tc={tc}", Params: []string{"tc"}},
	{Name: "Sülale Sorgulama", URLTemplate: "http://api.nabi.gt.tc/sulale?tc={tc}", Params: []string{"tc"}},
	{Name: "LGS Sorgulama", URLTemplate: "http://api.nabi.gt.tc/lgs?tc={tc}", Params: []string{"tc"}},
	{Name: "E-Kurs Sorgulama", URLTemplate: "http://api.nabi.gt.tc/e_kurs?tc={tc}&okulno={okulno}", Params: []string{"tc", "okulno"}},
	{Name: "IP Sorgulama", URLTemplate: "http://api.nabi.gt.tc/ip?domain={domain}", Params: []string{"domain"}},
	{Name: "DNS Sorgulama", URLTemplate: "http://api.nabi.gt.tc/dns?domain={domain}", Params: []string{"domain"}},
	{Name: "Whois Sorgulama", URLTemplate: "http://api.nabi.gt.tc/whois?domain={domain}", Params: []string{"domain"}},
	{Name: "Subdomain Sorgulama", URLTemplate: "http://api.nabi.gt.tc/subdomain?url={url}", Params: []string{"url"}},
	{Name: "Leak Sorgulama", URLTemplate: "http://api.nabi.gt.tc/leak?query={query}", Params: []string{"query"}},
	{Name: "Telegram Sorgulama", URLTemplate: "http://api.nabi.gt.tc/telegram?kullanici={kullanici}", Params: []string{"kullanici"}},
	{Name: "Şifre Encrypt", URLTemplate: "http://api.nabi.gt.tc/sifre_encrypt?method={method}&password={password}", Params: []string{"method", "password"}},
}
