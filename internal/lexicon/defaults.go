package lexicon

// DefaultConfig returns the built-in brand, product-type and locale tables.
func DefaultConfig() Config {
	return Config{
		Brands:            append([]Brand(nil), defaultBrands...),
		ProductTypes:      append([]ProductType(nil), defaultProductTypes...),
		LatestKeywords:    append([]string(nil), defaultLatestKeywords...),
		LocalePreferences: append([]LocalePreference(nil), defaultLocalePreferences...),
	}
}

var defaultBrands = []Brand{
	{Key: "dior", Domain: "dior.com", Aliases: []string{"迪奥", "迪奧", "christian dior", "克里斯汀迪奥"}},
	{Key: "gucci", Domain: "gucci.com", Aliases: []string{"古驰", "古馳", "古琦", "古奇"}},
	{Key: "prada", Domain: "prada.com", Aliases: []string{"普拉达", "普拉達"}},
	{Key: "burberry", Domain: "burberry.com", Aliases: []string{"巴宝莉", "巴寶莉", "博柏利"}},
	{Key: "fendi", Domain: "fendi.com", Aliases: []string{"芬迪", "芬蒂"}},
	{Key: "celine", Domain: "celine.com", Aliases: []string{"赛琳", "塞琳", "思琳", "céline"}},
	{Key: "loewe", Domain: "loewe.com", Aliases: []string{"罗意威", "羅意威", "罗威"}},
	{Key: "maxmara", Domain: "maxmara.com", Aliases: []string{"麦丝玛拉", "麥絲瑪拉", "max mara"}},
	{Key: "moncler", Domain: "moncler.com", Aliases: []string{"盟可睐", "蒙口", "蒙克莱"}},
	{Key: "saint laurent", Domain: "ysl.com", Aliases: []string{"圣罗兰", "聖羅蘭", "ysl", "伊夫圣罗兰", "yves saint laurent"}},
	{Key: "miumiu", Domain: "miumiu.com", Aliases: []string{"缪缪", "繆繆", "miu miu"}},
	{Key: "margiela", Domain: "maisonmargiela.com", Aliases: []string{"马吉拉", "馬吉拉", "maison margiela", "mm6"}},
	{Key: "acne", Domain: "acnestudios.com", Aliases: []string{"艾克妮", "acne studios"}},
	{Key: "qeelin", Domain: "qeelin.com", Aliases: []string{"麒麟"}},
	{Key: "fred", Domain: "fred.com", Aliases: []string{"斐登"}},
	{Key: "chanel", Domain: "chanel.com", Aliases: []string{"香奈儿", "香奈兒", "夏奈尔"}},
	{Key: "hermes", Domain: "hermes.com", Aliases: []string{"爱马仕", "愛馬仕", "艾尔梅斯", "hermès"}},
	{Key: "louis vuitton", Domain: "louisvuitton.com", Aliases: []string{"路易威登", "路易維登", "lv", "威登"}},
	{Key: "cartier", Domain: "cartier.com", Aliases: []string{"卡地亚", "卡地亞"}},
	{Key: "tiffany", Domain: "tiffany.com", Aliases: []string{"蒂芙尼", "蒂凡尼", "tiffany co", "tiffany & co"}},
	{Key: "bulgari", Domain: "bulgari.com", Aliases: []string{"宝格丽", "寶格麗", "bvlgari"}},
	{Key: "versace", Domain: "versace.com", Aliases: []string{"范思哲", "範思哲", "凡赛斯"}},
	{Key: "valentino", Domain: "valentino.com", Aliases: []string{"华伦天奴", "華倫天奴"}},
	{Key: "balenciaga", Domain: "balenciaga.com", Aliases: []string{"巴黎世家"}},
	{Key: "bottega veneta", Domain: "bottegaveneta.com", Aliases: []string{"葆蝶家", "bv", "宝缇嘉"}},
	{Key: "givenchy", Domain: "givenchy.com", Aliases: []string{"纪梵希", "紀梵希"}},
	{Key: "alexander mcqueen", Domain: "alexandermcqueen.com", Aliases: []string{"亚历山大麦昆", "麦昆", "mcqueen"}},
	{Key: "chloe", Domain: "chloe.com", Aliases: []string{"蔻依", "珂洛艾伊", "chloé"}},
	{Key: "ferragamo", Domain: "ferragamo.com", Aliases: []string{"菲拉格慕", "菲拉格默", "salvatore ferragamo"}},
	{Key: "armani", Domain: "armani.com", Aliases: []string{"阿玛尼", "亞曼尼", "giorgio armani"}},
	{Key: "dolce gabbana", Domain: "dolcegabbana.com", Aliases: []string{"杜嘉班纳", "dg", "d&g", "dolce & gabbana"}},
	{Key: "coach", Domain: "coach.com", Aliases: []string{"蔻驰", "寇驰"}},
	{Key: "michael kors", Domain: "michaelkors.com", Aliases: []string{"迈克高仕", "mk"}},
	{Key: "kate spade", Domain: "katespade.com", Aliases: []string{"凯特丝蓓", "ks"}},
	{Key: "tod", Domain: "tods.com", Aliases: []string{"托德斯", "tods", "tod's"}},
	{Key: "roger vivier", Domain: "rogervivier.com", Aliases: []string{"罗杰维维亚", "rv"}},
	{Key: "jimmy choo", Domain: "jimmychoo.com", Aliases: []string{"周仰杰", "吉米周"}},
	{Key: "christian louboutin", Domain: "christianlouboutin.com", Aliases: []string{"红底鞋", "鲁布托", "louboutin", "cl"}},
	{Key: "omega", Domain: "omegawatches.com", Aliases: []string{"欧米茄", "歐米茄"}},
	{Key: "rolex", Domain: "rolex.com", Aliases: []string{"劳力士", "勞力士"}},
	{Key: "patek philippe", Domain: "patek.com", Aliases: []string{"百达翡丽", "百達翡麗"}},
	{Key: "van cleef", Domain: "vancleefarpels.com", Aliases: []string{"梵克雅宝", "梵克雅寶", "vca", "van cleef & arpels"}},
}

var defaultProductTypes = []ProductType{
	// apparel
	{Keyword: "裙子", Terms: []string{"skirt", "jupe", "robe", "dress"}},
	{Keyword: "连衣裙", Terms: []string{"dress", "robe"}},
	{Keyword: "半裙", Terms: []string{"skirt", "jupe"}},
	{Keyword: "裙", Terms: []string{"skirt", "jupe", "robe", "dress"}},
	{Keyword: "外套", Terms: []string{"coat", "jacket", "manteau", "veste"}},
	{Keyword: "大衣", Terms: []string{"coat", "manteau", "overcoat"}},
	{Keyword: "夹克", Terms: []string{"jacket", "veste", "blouson"}},
	{Keyword: "风衣", Terms: []string{"trench", "coat"}},
	{Keyword: "西装", Terms: []string{"suit", "blazer", "costume"}},
	{Keyword: "衬衫", Terms: []string{"shirt", "chemise", "blouse"}},
	{Keyword: "毛衣", Terms: []string{"sweater", "pull", "pullover", "knitwear"}},
	{Keyword: "针织", Terms: []string{"knitwear", "maille", "tricot"}},
	{Keyword: "T恤", Terms: []string{"t-shirt", "tee"}},
	{Keyword: "牛仔裤", Terms: []string{"jeans", "denim"}},
	{Keyword: "短裤", Terms: []string{"shorts"}},
	{Keyword: "裤子", Terms: []string{"pants", "trousers", "pantalon"}},
	// bags
	{Keyword: "手提包", Terms: []string{"tote", "bag", "cabas"}},
	{Keyword: "斜挎包", Terms: []string{"crossbody", "bag", "bandouliere"}},
	{Keyword: "单肩包", Terms: []string{"shoulder", "bag"}},
	{Keyword: "双肩包", Terms: []string{"backpack", "sac", "dos"}},
	{Keyword: "钱包", Terms: []string{"wallet", "portefeuille"}},
	{Keyword: "卡包", Terms: []string{"card", "holder", "porte", "carte"}},
	{Keyword: "腰包", Terms: []string{"belt", "bag"}},
	{Keyword: "手袋", Terms: []string{"handbag", "sac"}},
	{Keyword: "包包", Terms: []string{"bag", "sac", "handbag"}},
	{Keyword: "包", Terms: []string{"bag", "sac", "handbag"}},
	// shoes
	{Keyword: "高跟鞋", Terms: []string{"heels", "pumps", "escarpins"}},
	{Keyword: "运动鞋", Terms: []string{"sneakers", "baskets", "trainers"}},
	{Keyword: "凉鞋", Terms: []string{"sandals", "sandales"}},
	{Keyword: "靴子", Terms: []string{"boots", "bottes"}},
	{Keyword: "乐福鞋", Terms: []string{"loafers", "mocassins"}},
	{Keyword: "平底鞋", Terms: []string{"flats", "ballerines"}},
	{Keyword: "鞋子", Terms: []string{"shoes", "chaussures"}},
	{Keyword: "鞋", Terms: []string{"shoes", "chaussures"}},
	// accessories
	{Keyword: "手表", Terms: []string{"watch", "montre"}},
	{Keyword: "腕表", Terms: []string{"watch", "montre", "timepiece"}},
	{Keyword: "项链", Terms: []string{"necklace", "collier"}},
	{Keyword: "戒指", Terms: []string{"ring", "bague"}},
	{Keyword: "耳环", Terms: []string{"earrings", "boucles", "oreilles"}},
	{Keyword: "手链", Terms: []string{"bracelet"}},
	{Keyword: "手镯", Terms: []string{"bangle", "bracelet"}},
	{Keyword: "太阳镜", Terms: []string{"sunglasses", "lunettes", "soleil"}},
	{Keyword: "眼镜", Terms: []string{"glasses", "lunettes"}},
	{Keyword: "丝巾", Terms: []string{"silk", "scarf", "carre"}},
	{Keyword: "围巾", Terms: []string{"scarf", "foulard", "echarpe"}},
	{Keyword: "帽子", Terms: []string{"hat", "chapeau", "cap"}},
	{Keyword: "皮带", Terms: []string{"belt", "ceinture"}},
	{Keyword: "腰带", Terms: []string{"belt", "ceinture"}},
	// jewellery and beauty
	{Keyword: "珠宝", Terms: []string{"jewelry", "joaillerie", "bijoux"}},
	{Keyword: "首饰", Terms: []string{"jewelry", "bijoux", "accessoires"}},
	{Keyword: "钻石", Terms: []string{"diamond", "diamant"}},
	{Keyword: "香水", Terms: []string{"perfume", "parfum", "fragrance"}},
	{Keyword: "口红", Terms: []string{"lipstick", "rouge", "levres"}},
	{Keyword: "化妆品", Terms: []string{"makeup", "maquillage", "cosmetics"}},
}

var defaultLatestKeywords = []string{"最新", "新款", "new", "latest", "newest", "recent", "nouveau", "nouveauté"}

var defaultLocalePreferences = []LocalePreference{
	{Domain: "dior.com", Marker: "/fr_fr/"},
}
