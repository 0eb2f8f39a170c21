package generator

import "github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"

type blueprint struct {
	estimatedMinutes    int32
	templateName        *string
	descriptionTemplate string
	requiresSkills      []string
}

func templateFile(path string) *string { return &path }

// blueprints 是按行动类型索引的生成蓝本，描述里的 {占位符} 由模板变量填充。
var blueprints = map[domain.ActionType]blueprint{
	domain.ActionPhoneCall: {
		estimatedMinutes: 5,
		templateName:     templateFile("phone_scripts/congressional_call.txt"),
		descriptionTemplate: "致电 {target_name}（{phone_number}）。\n\n" +
			"按照话术脚本进行，要点：\n" +
			"1. 表明自己的选民、顾客或利益相关方身份\n" +
			"2. 清晰说出具体诉求\n" +
			"3. 请对方给出承诺或时间表\n" +
			"4. 记录对方的回应\n\n" +
			"预计 3 到 5 分钟，含等待时间。",
	},
	domain.ActionEmail: {
		estimatedMinutes: 15,
		templateName:     templateFile("email_templates/corporate_ceo.txt"),
		descriptionTemplate: "给 {target_name}（{target_email}）发一封个性化邮件。\n\n" +
			"可以从模板出发，但务必个性化：\n" +
			"- 引用一个具体的事件、报告或调查发现\n" +
			"- 写上你与这个议题的个人关联\n" +
			"- 只提一个清晰具体的诉求\n" +
			"- 语气专业但直接\n\n" +
			"个性化邮件的效果是格式信的十倍。",
		requiresSkills: []string{"writing"},
	},
	domain.ActionSocialPost: {
		estimatedMinutes: 10,
		templateName:     templateFile("social_templates/twitter_thread.txt"),
		descriptionTemplate: "在社交媒体上发布关于 {campaign_name} 的帖子。\n\n" +
			"有效的社交施压方式：\n" +
			"- 直接@公司或官员账号\n" +
			"- 附上具体证据（照片、数据、文件）\n" +
			"- 使用运动话题标签 #{hashtag}\n" +
			"- @记者和同盟组织帮助扩散\n" +
			"- 在目标时区的高峰时段发布\n\n" +
			"和他人协同发布时效果最好。",
		requiresSkills: []string{"social_media"},
	},
	domain.ActionPublicComment: {
		estimatedMinutes: 30,
		templateName:     templateFile("email_templates/public_comment.txt"),
		descriptionTemplate: "就 {regulation_name} 提交公众评论。\n\n" +
			"案卷号：{docket_number}\n" +
			"截止时间：{comment_deadline}\n\n" +
			"机构必须回应的实质性评论应当：\n" +
			"- 引用具体数据、研究或已记录的状况\n" +
			"- 援引机构自己声明的目标或法定职责\n" +
			"- 提出具体的规则措辞或标准\n" +
			"- 描述现行政策造成的具体损害\n\n" +
			"注意：每条评论必须是独一无二的，不要照抄模板。\n" +
			"机构看重实质内容，不看重格式信的数量。",
		requiresSkills: []string{"writing", "research"},
	},
	domain.ActionFOIARequest: {
		estimatedMinutes: 120,
		descriptionTemplate: "向 {agency_name} 提交信息公开申请。\n\n" +
			"申请内容：{foia_subject}\n\n" +
			"有效申请的要点：\n" +
			"- 明确指定所求记录的日期、主题和相关官员\n" +
			"- 以公共利益为由申请减免费用\n" +
			"- 与截止时间相关时申请加急处理\n" +
			"- 对照机构规定补齐全部必备要素\n" +
			"- 提交到保管这批记录的正确窗口\n\n" +
			"记下申请编号，二十天后跟进。",
		requiresSkills: []string{"legal", "research"},
	},
	domain.ActionReview: {
		estimatedMinutes: 15,
		templateName:     templateFile("review_templates/google_review.txt"),
		descriptionTemplate: "发布一条关于 {target_name} 的事实性评价。\n\n" +
			"撰写准则：\n" +
			"- 每个论断都以已记录的事实为据\n" +
			"- 引用具体的报告、检查或事件\n" +
			"- 尽量写明日期和来源\n" +
			"- 描述亲身经历或有据可查的状况\n" +
			"- 保持事实准确，可以有情绪但不能失实\n\n" +
			"引用可核实事实的评价更难被删除。",
	},
	domain.ActionTestimony: {
		estimatedMinutes: 120,
		descriptionTemplate: "为 {hearing_name} 准备证词。\n\n" +
			"听证日期：{hearing_date}\n" +
			"委员会：{committee_name}\n\n" +
			"有效证词的结构：\n" +
			"1. 自我介绍与立场说明\n" +
			"2. 一个清晰的核心观点，反复强调\n" +
			"3. 支撑证据，最多三个具体例子\n" +
			"4. 具体的政策建议\n" +
			"5. 令人印象深刻的结语\n\n" +
			"默认控制在三分钟内，提前大声演练，给委员准备打印稿。",
		requiresSkills: []string{"writing", "research"},
	},
	domain.ActionContentCreation: {
		estimatedMinutes: 120,
		descriptionTemplate: "为 {campaign_name} 创作内容。\n\n" +
			"内容类型：{content_type}\n" +
			"目标受众：{audience}\n\n" +
			"内容要求：\n" +
			"- 把最有说服力的证据放在开头\n" +
			"- 包含清晰的行动号召\n" +
			"- 便于转发：视频三分钟以内，文字便于速读\n" +
			"- 所有论断注明来源\n" +
			"- 用平实易懂的语言",
		requiresSkills: []string{"writing", "design"},
	},
	domain.ActionSEOArticle: {
		estimatedMinutes: 180,
		descriptionTemplate: "撰写一篇针对关键词「{target_keyword}」的 SEO 优化文章。\n\n" +
			"目标：让相关搜索的首页出现我们的内容。\n\n" +
			"文章要求：\n" +
			"- 1500 到 2500 字\n" +
			"- 主关键词出现在标题、一级标题、首段和结尾\n" +
			"- 自然融入 3 到 5 个次级关键词\n" +
			"- 至少 5 个权威外链\n" +
			"- 附上原创数据、图表或图片\n\n" +
			"发布平台：{publication_target}",
		requiresSkills: []string{"writing", "research"},
	},
	domain.ActionOSINTResearch: {
		estimatedMinutes: 240,
		descriptionTemplate: "对 {research_target} 开展公开情报调研。\n\n" +
			"调研方向：\n" +
			"- 工商档案与证券申报材料\n" +
			"- 许可证记录与检查报告\n" +
			"- 环境合规数据库\n" +
			"- 游说披露与政治捐款记录\n" +
			"- 关键高管的社交媒体\n" +
			"- 新闻档案中的既往事件\n\n" +
			"所有发现都要留存来源链接和截图，按证据模板统一格式。",
		requiresSkills: []string{"research", "data_analysis"},
	},
	domain.ActionShareholderAction: {
		estimatedMinutes: 240,
		templateName:     templateFile("email_templates/investor_relations.txt"),
		descriptionTemplate: "针对 {target_name} 采取股东行动。\n\n" +
			"按持股情况可选：\n" +
			"- 直接向投资者关系部门问询\n" +
			"- 分析代理声明并给出投票建议\n" +
			"- 向 ESG 评级机构提交材料\n" +
			"- 起草股东决议（有持股门槛）\n\n" +
			"即使不是股东，也可以就 ESG 风险和重大信息披露向投资者关系部门提出事实性问询。",
		requiresSkills: []string{"research"},
	},
	domain.ActionSatelliteAnalysis: {
		estimatedMinutes: 180,
		descriptionTemplate: "分析 {facility_name} 的卫星影像。\n\n" +
			"位置：{coordinates}\n\n" +
			"关注：\n" +
			"- 设施是否扩张超出许可范围\n" +
			"- 废水塘状况与外溢迹象\n" +
			"- 与历史影像对比的变化\n" +
			"- 对周边土地和水体的环境影响\n\n" +
			"发现都要留存带时间戳的截图。",
		requiresSkills: []string{"research", "data_analysis"},
	},
	domain.ActionCitizenSuit: {
		estimatedMinutes: 480,
		descriptionTemplate: "评估针对 {target_name} 提起公民诉讼的可行性。\n\n" +
			"法律依据：{applicable_statute}\n" +
			"违规情况：{violation_description}\n\n" +
			"评估清单：\n" +
			"1. 确认法定起诉资格\n" +
			"2. 记录持续或反复的违规\n" +
			"3. 核对提前通知期限要求\n" +
			"4. 检查政府是否已在积极执法\n" +
			"5. 物色可以合作的公益法律团队\n\n" +
			"这是一项调研评估任务，未经法律顾问确认不要提起诉讼。",
		requiresSkills: []string{"legal", "research"},
	},
	domain.ActionBoycott: {
		estimatedMinutes: 15,
		descriptionTemplate: "参与对 {target_name} 的抵制。\n\n" +
			"可以做的事：\n" +
			"- 换用替代产品：{alternatives}\n" +
			"- 在社交媒体上分享抵制信息\n" +
			"- 联系公司说明你抵制的原因\n" +
			"- 记录并上报你的参与情况\n\n" +
			"当公司看到可衡量的营收影响时，抵制才会起作用。",
	},
}
