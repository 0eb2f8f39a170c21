package planner

import "github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/domain"

// Template 描述一类运动的打法：动用的渠道、逐级升级的阶段和常用的行动类型。
// 模板来自长期实践中验证过的运动结构，先用低成本高数量的行动铺开，
// 再逐步升级到高影响力的行动，同时在多条渠道上保持持续压力。
type Template struct {
	Channels    []domain.Channel    `json:"channels"`
	Ladder      []domain.Phase      `json:"ladder"`
	ActionTypes []domain.ActionType `json:"actionTypes"`
}

var templates = map[domain.CampaignType]*Template{
	// 企业运动：多渠道逐级升级，促使公司改变做法
	domain.CampaignCorporate: {
		Channels: []domain.Channel{
			domain.ChannelEmail,
			domain.ChannelSocialMedia,
			domain.ChannelShareholder,
			domain.ChannelConsumer,
			domain.ChannelMedia,
		},
		Ladder: []domain.Phase{
			{
				PhaseNumber:   1,
				Name:          "直接交涉",
				DurationWeeks: 2,
				Tactics: []string{
					"邮件联系 CEO 与可持续发展团队，提出具体诉求",
					"在社交媒体上点名品牌账号并附上证据",
					"发布引用已记录问题的在线评价",
				},
				WinTrigger: "公司同意会面或发表声明",
			},
			{
				PhaseNumber:   2,
				Name:          "公开施压",
				DurationWeeks: 4,
				Tactics: []string{
					"带话题标签的协同社交媒体行动",
					"向投资者与股东发出问询函",
					"向财经与行业记者递送报道线索",
					"发起消费者抵制并推荐替代品牌",
				},
				WinTrigger: "获得媒体报道或投资者开始问询",
			},
			{
				PhaseNumber:   3,
				Name:          "机构施压",
				DurationWeeks: 6,
				Tactics: []string{
					"提交股东决议",
					"向 ESG 评级机构投诉并附证明材料",
					"向零售商与供应商发出施压信函",
					"邀请名人与意见领袖转发扩散",
				},
				WinTrigger: "董事会层面讨论或宣布政策调整",
			},
			{
				PhaseNumber:   4,
				Name:          "全面施压",
				DurationWeeks: 8,
				Tactics: []string{
					"在年度股东大会上发起代理投票行动",
					"向环保与农业主管部门及州检察长提交监管申诉",
					"评估集体诉讼或公民诉讼的可行性",
					"与纪录片或深度调查团队建立合作",
				},
				WinTrigger: "拿到带核验机制的约束性承诺",
			},
		},
		ActionTypes: []domain.ActionType{
			domain.ActionEmail,
			domain.ActionPhoneCall,
			domain.ActionSocialPost,
			domain.ActionReview,
			domain.ActionShareholderAction,
			domain.ActionBoycott,
		},
	},
	// 立法运动：推动法案通过或阻止有害立法
	domain.CampaignLegislative: {
		Channels: []domain.Channel{
			domain.ChannelPhone,
			domain.ChannelEmail,
			domain.ChannelGrassroots,
			domain.ChannelMedia,
		},
		Ladder: []domain.Phase{
			{
				PhaseNumber:   1,
				Name:          "选民施压",
				DurationWeeks: 3,
				Tactics: []string{
					"打电话给目标议员的选区与首都办公室",
					"选民撰写附个人经历的邮件",
					"出席市民大会并提出留有记录的提问",
				},
				WinTrigger: "议员办公室承认收到大量联系",
			},
			{
				PhaseNumber:   2,
				Name:          "联盟构建",
				DurationWeeks: 4,
				Tactics: []string{
					"组织盟友机构的联署信件",
					"为委员会听证招募专家证人",
					"在选区报纸发表专栏",
					"在社交媒体上定向触达摇摆票议员",
				},
				WinTrigger: "新增联署议员或排定委员会听证",
			},
			{
				PhaseNumber:   3,
				Name:          "冲刺表决",
				DurationWeeks: 6,
				Tactics: []string{
					"组织协同打电话日，每个办公室五百通以上",
					"举办游说日并安排选民当面会谈",
					"在摇摆选区投放付费媒体",
					"发动草根领袖与捐助人施压",
				},
				WinTrigger: "排定院会表决或修正案被接受",
			},
		},
		ActionTypes: []domain.ActionType{
			domain.ActionPhoneCall,
			domain.ActionEmail,
			domain.ActionTestimony,
			domain.ActionSocialPost,
			domain.ActionContentCreation,
		},
	},
	// 监管运动：影响规则制定或推动既有法规的执行
	domain.CampaignRegulatory: {
		Channels: []domain.Channel{
			domain.ChannelRegulatory,
			domain.ChannelLegal,
			domain.ChannelMedia,
			domain.ChannelEmail,
		},
		Ladder: []domain.Phase{
			{
				PhaseNumber:   1,
				Name:          "评论期攻势",
				DurationWeeks: 4,
				Tactics: []string{
					"提交有实质内容的公众评论，避免千篇一律的模板",
					"就机构与行业的往来提交信息公开申请",
					"邀请科学家与兽医提交专家意见",
				},
				WinTrigger: "机构承认收到需要回应的实质性评论",
			},
			{
				PhaseNumber:   2,
				Name:          "执法推动",
				DurationWeeks: 6,
				Tactics: []string{
					"向监察部门提交申诉",
					"向州检察长提交请愿",
					"推动媒体报道执法缺口",
					"请求国会进行监督质询",
				},
				WinTrigger: "启动调查或执法行动",
			},
			{
				PhaseNumber:   3,
				Name:          "法律行动",
				DurationWeeks: 12,
				Tactics: []string{
					"依据清洁水法或清洁空气法提起公民诉讼",
					"依据行政程序法提出规则挑战",
					"推动州级监管请愿",
					"视情况提起国际贸易申诉",
				},
				WinTrigger: "法院裁定或达成和解令",
			},
		},
		ActionTypes: []domain.ActionType{
			domain.ActionPublicComment,
			domain.ActionFOIARequest,
			domain.ActionCitizenSuit,
			domain.ActionEmail,
			domain.ActionContentCreation,
		},
	},
	// 调查运动：为后续行动积累证据
	domain.CampaignInvestigation: {
		Channels: []domain.Channel{
			domain.ChannelLegal,
			domain.ChannelMedia,
			domain.ChannelRegulatory,
		},
		Ladder: []domain.Phase{
			{
				PhaseNumber:   1,
				Name:          "公开情报收集",
				DurationWeeks: 4,
				Tactics: []string{
					"分析企业工商档案与证券申报材料",
					"就许可证与检查记录提交信息公开申请",
					"用卫星影像分析设施变化",
					"监测员工与承包商的社交媒体",
				},
				WinTrigger: "记录到违规或隐瞒的模式",
			},
			{
				PhaseNumber:   2,
				Name:          "深度调查",
				DurationWeeks: 8,
				Tactics: []string{
					"定向申请机构与行业往来的信息公开",
					"通过安全渠道联系内部举报人",
					"绘制并核验供应链",
					"对设施周边的水质与空气采样检测",
				},
				WinTrigger: "证据包足以支撑法律或媒体行动",
			},
			{
				PhaseNumber:   3,
				Name:          "发布与行动",
				DurationWeeks: 4,
				Tactics: []string{
					"与调查报道媒体合作发布",
					"附证明材料向监管机构提交申诉",
					"向股东与投资者通报调查发现",
					"发布附建议的公开报告",
				},
				WinTrigger: "调查触发执法或企业改变",
			},
		},
		ActionTypes: []domain.ActionType{
			domain.ActionOSINTResearch,
			domain.ActionFOIARequest,
			domain.ActionSatelliteAnalysis,
			domain.ActionContentCreation,
		},
	},
	// 文化运动：改变公共叙事与搜索结果
	domain.CampaignCultural: {
		Channels: []domain.Channel{
			domain.ChannelSocialMedia,
			domain.ChannelMedia,
			domain.ChannelConsumer,
			domain.ChannelGrassroots,
		},
		Ladder: []domain.Phase{
			{
				PhaseNumber:   1,
				Name:          "内容播种",
				DurationWeeks: 4,
				Tactics: []string{
					"面向行业搜索词撰写 SEO 优化文章",
					"制作系列社交媒体内容与可转发素材",
					"向意见领袖提供论点与证明材料",
					"在相关社区与论坛参与讨论",
				},
				WinTrigger: "内容在目标关键词上获得排名或病毒式传播",
			},
			{
				PhaseNumber:   2,
				Name:          "叙事放大",
				DurationWeeks: 6,
				Tactics: []string{
					"在主流媒体发表专栏",
					"参加立场相近的播客节目",
					"为短视频平台制作系列视频",
					"组织协同转发与互动小组",
				},
				WinTrigger: "主流媒体采用我们的表述或术语",
			},
			{
				PhaseNumber:   3,
				Name:          "文化扎根",
				DurationWeeks: 8,
				Tactics: []string{
					"制作纪录片或长视频",
					"开发课程与教育材料",
					"争取公众人物公开支持",
					"创设年度主题活动日",
				},
				WinTrigger: "公共讨论指标出现持续转变",
			},
		},
		ActionTypes: []domain.ActionType{
			domain.ActionContentCreation,
			domain.ActionSEOArticle,
			domain.ActionSocialPost,
		},
	},
}
